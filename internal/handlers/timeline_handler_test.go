package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"worklines-api/internal/database"
	"worklines-api/internal/models"
	"worklines-api/internal/timeline"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func timelineRouter() *gin.Engine {
	r := authedRouter()
	r.GET("/api/timeline", GetTimeline)
	return r
}

type timelineResponse struct {
	Columns []timeline.MonthColumn `json:"columns"`
	Rows    []TimelineRow          `json:"rows"`
}

func TestGetTimeline_ColumnsAndBars(t *testing.T) {
	setupTestDB(t)
	require.NoError(t, database.DB.Create(&models.Task{
		ID: "t-1", LineID: "line-1", ProjectID: "p-1", Title: "Única",
		StartDate: "2024-01-10", EndDate: "2024-02-20",
	}).Error)

	w := doJSON(t, timelineRouter(), http.MethodGet, "/api/timeline", userToken(t, "line-1"), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp timelineResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Columns, 6) // ene..jun 2024
	require.Equal(t, "ene", resp.Columns[0].Label)
	require.Len(t, resp.Rows, 1)
	require.NotNil(t, resp.Rows[0].Bar)
	require.GreaterOrEqual(t, resp.Rows[0].Bar.WidthPercent, 0.0)
}

func TestGetTimeline_UnparseableDatesGetNoBar(t *testing.T) {
	setupTestDB(t)
	require.NoError(t, database.DB.Create(&models.Task{
		ID: "t-ok", LineID: "line-1", ProjectID: "p-1", Title: "Con fechas",
		StartDate: "2024-03-01", EndDate: "2024-04-01",
	}).Error)
	require.NoError(t, database.DB.Create(&models.Task{
		ID: "t-bad", LineID: "line-1", ProjectID: "p-1", Title: "Sin fechas",
		StartDate: "TBD", EndDate: "",
	}).Error)

	w := doJSON(t, timelineRouter(), http.MethodGet, "/api/timeline", userToken(t, "line-1"), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp timelineResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Rows, 2)

	bars := map[string]bool{}
	for _, row := range resp.Rows {
		bars[row.Task.ID] = row.Bar != nil
	}
	require.True(t, bars["t-ok"])
	require.False(t, bars["t-bad"])
}

func TestGetTimeline_EmptyLine(t *testing.T) {
	setupTestDB(t)

	w := doJSON(t, timelineRouter(), http.MethodGet, "/api/timeline", userToken(t, "line-vacía"), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp timelineResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Empty(t, resp.Columns)
	require.Empty(t, resp.Rows)
}
