package main

import (
	"log"
	"os"
	"strconv"

	"bistro-orders/config"
	httpapi "bistro-orders/internal/api/http"
	"bistro-orders/internal/service"
	"bistro-orders/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, relying on environment")
	}

	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	kafkaWriter := config.NewKafkaWriter(config.Getenv("KAFKA_TOPIC", "orders"))
	defer kafkaWriter.Close()

	restaurant := config.Getenv("RESTAURANT_SLUG", "default")
	atomicCounter, _ := strconv.ParseBool(os.Getenv("COUNTER_ATOMIC"))

	cartStore, err := storage.NewFileStore(config.Getenv("CART_DIR", "./data"))
	if err != nil {
		log.Fatal("Failed to open cart storage:", err)
	}

	catalogSvc := service.NewCatalogService(restaurant, storage.NewPostgresCatalog(db))
	cartSvc := service.NewCartService(cartStore)
	orderSvc := service.NewOrderService(
		restaurant,
		storage.NewRedisKeyedStore(rdb),
		storage.NewKafkaPublisher(kafkaWriter),
		service.DefaultQRGenerator{BaseURL: config.Getenv("BASE_URL", "http://localhost")},
		atomicCounter,
	)

	handler := httpapi.NewHandler(catalogSvc, cartSvc, orderSvc)
	router := httpapi.NewRouter(handler)

	httpapi.StartServer(":"+config.Getenv("PORT", "8080"), router)
}
