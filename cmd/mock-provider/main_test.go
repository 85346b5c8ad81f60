package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestMockProvider_Weather(t *testing.T) {
	w := request(t, "/weather?q=Montevideo,uy&appid=key")

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			ID int `json:"id"`
		} `json:"weather"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 302.21, body.Main.Temp)
	require.Len(t, body.Weather, 1)
	assert.Equal(t, 803, body.Weather[0].ID)
}

func TestMockProvider_Forecast(t *testing.T) {
	w := request(t, "/forecast?q=london,gb&appid=key")

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		List []struct {
			DtTxt string `json:"dt_txt"`
		} `json:"list"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.List, 8)
	assert.NotEmpty(t, body.List[0].DtTxt)
}

func TestMockProvider_Errors(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected int
	}{
		{"MissingKey", "/weather?q=montevideo,uy", http.StatusUnauthorized},
		{"InvalidKeyCity", "/weather?q=invalidkey,uy&appid=key", http.StatusUnauthorized},
		{"ServerError", "/forecast?q=servererror,uy&appid=key", http.StatusInternalServerError},
		{"UnknownCity", "/weather?q=atlantis,uy&appid=key", http.StatusNotFound},
		{"EmptyQuery", "/weather?appid=key", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := request(t, tt.path)

			assert.Equal(t, tt.expected, w.Code)
			assert.Contains(t, w.Body.String(), `"message"`)
		})
	}
}
