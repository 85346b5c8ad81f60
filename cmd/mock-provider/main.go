// Command mock-provider serves a local fake of the OpenWeatherMap /weather and /forecast
// endpoints. Point OPENWEATHERMAP_API_BASE_URL at it for manual end-to-end runs.
package main

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"wapi.app/pkg/logger"
)

const (
	defaultPort = "8090"

	// Special cities that trigger error responses
	cityInvalidKey  = "invalidkey"
	cityServerError = "servererror"
	citySlow        = "slow"
)

type reading struct {
	tempK       float64
	pressure    float64
	humidity    float64
	conditionID int
	description string
	lat, lon    float64
	sunrise     int64
	sunset      int64
}

var cities = map[string]reading{
	"montevideo": {
		tempK: 302.21, pressure: 1012, humidity: 74,
		conditionID: 803, description: "broken clouds",
		lat: -34.9033, lon: -56.1882,
		sunrise: 1704096000, sunset: 1704145500,
	},
	"london": {
		tempK: 288.15, pressure: 1008, humidity: 81,
		conditionID: 804, description: "overcast clouds",
		lat: 51.5085, lon: -0.1257,
		sunrise: 1704096300, sunset: 1704124800,
	},
}

func main() {
	logger.NewWithOptions(logger.Options{Level: os.Getenv("LOG_LEVEL")}).SetDefault()

	port := os.Getenv("MOCK_PROVIDER_PORT")
	if port == "" {
		port = defaultPort
	}

	gin.SetMode(gin.ReleaseMode)
	router := newRouter()

	slog.Info("Mock OpenWeatherMap server starting", "port", port)
	if err := router.Run(":" + port); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}

func newRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/weather", lookup(func(c *gin.Context, r reading) {
		c.JSON(http.StatusOK, currentBody(r))
	}))
	r.GET("/forecast", lookup(func(c *gin.Context, r reading) {
		c.JSON(http.StatusOK, forecastBody(r))
	}))

	return r
}

// lookup resolves q=<city>,<country> and writes the OpenWeatherMap style error bodies
func lookup(respond func(c *gin.Context, r reading)) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("appid") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"cod": 401, "message": "Invalid API key. Please see https://openweathermap.org/faq#error401 for more info."})
			return
		}

		city, _, _ := strings.Cut(strings.ToLower(c.Query("q")), ",")
		switch city {
		case "":
			c.JSON(http.StatusBadRequest, gin.H{"cod": "400", "message": "Nothing to geocode"})
			return
		case cityInvalidKey:
			c.JSON(http.StatusUnauthorized, gin.H{"cod": 401, "message": "Invalid API key. Please see https://openweathermap.org/faq#error401 for more info."})
			return
		case cityServerError:
			c.JSON(http.StatusInternalServerError, gin.H{"cod": "500", "message": "Internal server error"})
			return
		case citySlow:
			time.Sleep(15 * time.Second)
		}

		r, ok := cities[city]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"cod": "404", "message": "city not found"})
			return
		}
		respond(c, r)
	}
}

func currentBody(r reading) gin.H {
	return gin.H{
		"main":    gin.H{"temp": r.tempK, "pressure": r.pressure, "humidity": r.humidity},
		"weather": []gin.H{{"id": r.conditionID, "description": r.description}},
		"sys":     gin.H{"sunrise": r.sunrise, "sunset": r.sunset},
		"coord":   gin.H{"lat": r.lat, "lon": r.lon},
	}
}

// forecastBody returns eight three-hourly entries drifting around the current reading
func forecastBody(r reading) gin.H {
	start := time.Unix(r.sunrise, 0).UTC().Truncate(3 * time.Hour)
	list := make([]gin.H, 0, 8)
	for i := 0; i < 8; i++ {
		list = append(list, gin.H{
			"main":    gin.H{"temp": r.tempK + float64(i%4) - 1.5, "pressure": r.pressure, "humidity": r.humidity},
			"weather": []gin.H{{"id": r.conditionID, "description": r.description}},
			"dt_txt":  start.Add(time.Duration(i*3) * time.Hour).Format("2006-01-02 15:04:05"),
		})
	}
	return gin.H{"cnt": len(list), "list": list}
}
