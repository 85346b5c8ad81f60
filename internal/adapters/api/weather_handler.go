package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"wapi.app/internal/core/weather"
	"wapi.app/internal/ports"
)

// getWeather handles GET /weather?city=<city>&country=<cc>.
// An absent parameter stays nil so validation can report it as missing.
func (s *HTTPServerAdapter) getWeather(c *gin.Context) {
	var request weather.WeatherRequest
	if city, ok := c.GetQuery("city"); ok {
		request.City = &city
	}
	if country, ok := c.GetQuery("country"); ok {
		request.Country = &country
	}

	s.logger.Info("Received weather request",
		ports.F("city", c.Query("city")),
		ports.F("country", c.Query("country")),
		ports.F("request_id", c.GetString(requestIDKey)))

	result, err := s.weatherUseCase.GetWeather(c.Request.Context(), request)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
