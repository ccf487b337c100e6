package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBBox(t *testing.T) {
	tests := []struct {
		desc    string
		raw     string
		wantErr bool
	}{
		{desc: "empty is nil, no error", raw: "", wantErr: false},
		{desc: "valid 2D box", raw: "10,20,30,40", wantErr: false},
		{desc: "valid 3D box", raw: "10,20,0,30,40,100", wantErr: false},
		{desc: "non numeric", raw: "a,b,c,d", wantErr: true},
		{desc: "wrong arity", raw: "1,2,3", wantErr: true},
		{desc: "min greater than max", raw: "30,20,10,40", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			b, err := BBox(tc.raw)

			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)

			if tc.raw == "" {
				assert.Nil(t, b)
			} else {
				assert.NotNil(t, b)
			}
		})
	}
}

func TestBBox3D(t *testing.T) {
	b, err := BBox("10,20,0,30,40,100")

	assert.NoError(t, err)
	assert.NotNil(t, b.ZMin)
	assert.NotNil(t, b.ZMax)
	assert.Equal(t, 0.0, *b.ZMin)
	assert.Equal(t, 100.0, *b.ZMax)
}
