package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/askbook/askbook-api/internal/catalog"
	"github.com/askbook/askbook-api/internal/catalog/service"
	"github.com/gin-gonic/gin"
)

// RegisterBookRoutes registers the read-only catalog endpoints.
func RegisterBookRoutes(r gin.IRoutes, svc service.Service) {
	r.GET("/books", func(c *gin.Context) {
		f := catalog.Filter{
			Age:    c.Query(catalog.FieldAge),
			Rating: c.Query(catalog.FieldRating),
			Genre:  c.Query(catalog.FieldGenre),
			Author: c.Query(catalog.FieldAuthor),
			Title:  c.Query(catalog.FieldTitle),
		}
		books, err := svc.List(context.WithoutCancel(c.Request.Context()), f)
		if err != nil {
			if errors.Is(err, service.ErrNoMatches) {
				c.String(http.StatusNotFound, err.Error())
				return
			}
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.JSON(http.StatusOK, books)
	})

	r.GET("/books/:id", func(c *gin.Context) {
		b, err := svc.Get(context.WithoutCancel(c.Request.Context()), c.Param("id"))
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				c.String(http.StatusNotFound, err.Error())
				return
			}
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.JSON(http.StatusOK, b)
	})
}
