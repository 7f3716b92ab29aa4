package handlers

import (
	"net/http"

	"github.com/createmusic-space/musicgen/internal/models"
	"github.com/gin-gonic/gin"
)

type scaleJSON struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ListScales returns the scales the generator accepts
func ListScales(c *gin.Context) {
	out := make([]scaleJSON, 0, len(models.Scales))
	for _, s := range models.Scales {
		out = append(out, scaleJSON{Label: s.Label(), Value: s.Value()})
	}
	c.JSON(http.StatusOK, gin.H{"scales": out})
}
