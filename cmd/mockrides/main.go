// README: Mock Uber/Lyft price feeds for local development and demos.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type feed struct {
	service    string
	basePrices map[string]float64
	fallback   float64
	surgeMin   float64
	surgeMax   float64
	tiers      []tier
}

type tier struct {
	rideType    string
	priceFactor float64
	etaMin      int
	etaMax      int
}

var uberFeed = feed{
	service: "Uber",
	basePrices: map[string]float64{
		"Home->Office":    16,
		"Office->Home":    19,
		"Home->Airport":   45,
		"Office->Airport": 42,
	},
	fallback: 20,
	surgeMin: 1.0,
	surgeMax: 1.8,
	tiers: []tier{
		{rideType: "UberX", priceFactor: 1.0, etaMin: 13, etaMax: 32},
		{rideType: "UberPool", priceFactor: 0.7, etaMin: 8, etaMax: 25},
	},
}

var lyftFeed = feed{
	service: "Lyft",
	basePrices: map[string]float64{
		"Home->Office":    14,
		"Office->Home":    17,
		"Home->Airport":   42,
		"Office->Airport": 38,
	},
	fallback: 18,
	surgeMin: 0.9,
	surgeMax: 1.6,
	tiers: []tier{
		{rideType: "Lyft", priceFactor: 1.0, etaMin: 15, etaMax: 30},
		{rideType: "Lyft Shared", priceFactor: 0.65, etaMin: 8, etaMax: 23},
	},
}

func (f feed) handler(c *gin.Context) {
	from := c.DefaultQuery("from", "Home")
	to := c.DefaultQuery("to", "Office")

	base, ok := f.basePrices[from+"->"+to]
	if !ok {
		base = f.fallback
	}
	surge := f.surgeMin + rand.Float64()*(f.surgeMax-f.surgeMin)

	ridesOut := make([]gin.H, 0, len(f.tiers))
	for _, t := range f.tiers {
		ridesOut = append(ridesOut, gin.H{
			"type":             t.rideType,
			"price":            round2(base * t.priceFactor * surge),
			"eta":              t.etaMin + rand.Intn(t.etaMax-t.etaMin+1),
			"surge_multiplier": math.Round(surge*10) / 10,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"service":   f.service,
		"rides":     ridesOut,
		"timestamp": time.Now().Unix(),
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func main() {
	addr := flag.String("addr", ":3001", "listen address")
	flag.Parse()

	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	r.GET("/api/uber/rides", uberFeed.handler)
	r.GET("/api/lyft/rides", lyftFeed.handler)
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"services":  []string{"uber", "lyft"},
		})
	})

	fmt.Printf("Mock ride feeds listening on %s\n", *addr)
	if err := r.Run(*addr); err != nil {
		log.Fatal(err)
	}
}
