package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeConfig map[string]string

func (c fakeConfig) Get(key string) string { return c[key] }

func (c fakeConfig) GetOrDefault(key, def string) string {
	if v, ok := c[key]; ok && v != "" {
		return v
	}

	return def
}

type fakeMetrics struct {
	gauges map[string]float64
}

func newFakeMetrics() *fakeMetrics { return &fakeMetrics{gauges: map[string]float64{}} }

func (m *fakeMetrics) NewCounter(name, help string, labels ...string)            {}
func (m *fakeMetrics) NewGauge(name, help string)                                { m.gauges[name] = 0 }
func (m *fakeMetrics) NewHistogram(name, help string, buckets ...float64)        {}
func (m *fakeMetrics) SetGauge(name string, value float64)                       { m.gauges[name] = value }
func (m *fakeMetrics) IncCounter(name string, labels ...string)                  {}
func (m *fakeMetrics) ObserveHistogram(name string, value float64, labels ...string) {}

func TestNewContainerWithNilConfig(t *testing.T) {
	c := NewContainer(nil, newFakeMetrics())

	assert.Nil(t, c.SQL)
	assert.Empty(t, c.GetAppName())
}

func TestNewContainerRegistersStoreMetrics(t *testing.T) {
	metrics := newFakeMetrics()

	conf := fakeConfig{
		"APP_NAME":    "mf-server-test",
		"LOG_LEVEL":   "DEBUG",
		"DB_HOST":     "127.0.0.1",
		"DB_PORT":     "1", // unroutable port, connection fails fast
		"DB_NAME":     "mobilitydb",
		"DB_USER":     "docker",
		"DB_PASSWORD": "docker",
	}

	c := NewContainer(conf, metrics)

	assert.Equal(t, "mf-server-test", c.GetAppName())
	assert.Nil(t, c.SQL)
	assert.Contains(t, metrics.gauges, "app_sql_open_connections")
	assert.Contains(t, metrics.gauges, "app_sql_inuse_connections")
}

func TestContainerPingWithoutStore(t *testing.T) {
	c := NewContainer(nil, newFakeMetrics())

	assert.Error(t, c.Ping(context.Background()))
}

func TestContainerCloseWithoutStore(t *testing.T) {
	c := NewContainer(nil, newFakeMetrics())

	assert.NoError(t, c.Close())
}
