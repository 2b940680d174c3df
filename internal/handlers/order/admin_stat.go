package order

import (
	"context"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"plantnet_back_end/internal/database"
	"plantnet_back_end/internal/models"
)

type dayStat struct {
	Date     string  `json:"date"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Orders   int     `json:"order"`
}

// buildOrderStats agrège le chiffre d'affaires total et la série par jour
// (date tronquée au jour, du plus récent au plus ancien).
func buildOrderStats(orders []models.Order) (float64, []dayStat) {
	var totalRevenue float64
	byDay := make(map[string]*dayStat)

	for _, o := range orders {
		totalRevenue += o.Price

		day := o.CreatedAt.Format("2006-01-02")
		s, ok := byDay[day]
		if !ok {
			s = &dayStat{Date: day}
			byDay[day] = s
		}
		s.Quantity += o.Quantity
		s.Price += o.Price
		s.Orders++
	}

	series := make([]dayStat, 0, len(byDay))
	for _, s := range byDay {
		series = append(series, *s)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date > series[j].Date })

	return totalRevenue, series
}

// GetAdminStats calcule les statistiques du tableau de bord admin.
// Recalculé à chaque requête, jamais mis en cache.
func GetAdminStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	totalUsers, err := database.Users().CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Println("❌ Erreur comptage utilisateurs:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	totalPlants, err := database.Plants().CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Println("❌ Erreur comptage plantes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	opts := options.Find().SetProjection(bson.M{"quantity": 1, "price": 1, "createdAt": 1})
	cursor, err := database.Orders().Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Println("❌ Erreur lecture commandes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage"})
		return
	}

	totalRevenue, chartData := buildOrderStats(orders)

	c.JSON(http.StatusOK, gin.H{
		"totalUser":    totalUsers,
		"totalPlants":  totalPlants,
		"totalOrder":   len(orders),
		"totalRevenue": totalRevenue,
		"chartData":    chartData,
	})
}
