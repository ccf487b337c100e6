// Command mf-server runs the OGC API - Moving Features HTTP service:
// wires config, metrics, the store, and the resource controllers (§4.E),
// then serves until interrupted.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/mf-api/server/internal/handler"
	"github.com/mf-api/server/internal/store"
	"github.com/mf-api/server/pkg/mf"
)

func main() {
	app := mf.New()
	app.SupportedLocales("en")

	h := handler.New(store.New(app.Container().SQL))

	app.GET("/collections", h.ListCollections)
	app.POST("/collections", h.CreateCollection)
	app.GET("/collections/{collectionId}", h.GetCollection)
	app.PUT("/collections/{collectionId}", h.UpdateCollection)
	app.DELETE("/collections/{collectionId}", h.DeleteCollection)

	app.GET("/collections/{collectionId}/items", h.ListFeatures)
	app.POST("/collections/{collectionId}/items", h.CreateFeature)
	app.GET("/collections/{collectionId}/items/{featureId}", h.GetFeature)
	app.DELETE("/collections/{collectionId}/items/{featureId}", h.DeleteFeature)

	app.GET("/collections/{collectionId}/items/{featureId}/tGeometries", h.ListTemporalGeometries)
	app.POST("/collections/{collectionId}/items/{featureId}/tGeometries", h.CreateTemporalGeometry)
	app.DELETE("/collections/{collectionId}/items/{featureId}/tGeometries/{tGeometryId}", h.DeleteTemporalGeometry)

	app.GET("/collections/{collectionId}/items/{featureId}/tProperties", h.ListTemporalProperties)
	app.POST("/collections/{collectionId}/items/{featureId}/tProperties", h.CreateTemporalProperty)
	app.POST("/collections/{collectionId}/items/{featureId}/tProperties/{tPropertyName}", h.AppendTemporalPropertyValues)
	app.DELETE("/collections/{collectionId}/items/{featureId}/tProperties/{tPropertyName}", h.DeleteTemporalProperty)
	app.GET("/collections/{collectionId}/items/{featureId}/tProperties/{tPropertyName}/values", h.ListTemporalPropertyValues)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, ":8080"); err != nil {
		app.Container().Logger.Fatalf("server exited: %v", err)
	}
}
