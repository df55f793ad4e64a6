package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"

	gorm_postgres "gorm.io/driver/postgres"

	"dispatch/cmd"
)

func main() {
	configs := getConfigs()

	gormDB, err := connectDB(configs)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	root, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	jobManager, err := root.CreateJobManager()
	if err != nil {
		log.Fatalf("Error building job manager: %v", err)
	}
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	e := root.CreateRouter()
	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		RedisAddr: goDotEnvVariable("REDIS_ADDR"),

		PaymentAPIURL: goDotEnvVariable("PAYMENT_API_URL"),
		PaymentAPIKey: goDotEnvVariable("PAYMENT_API_KEY"),
		AuthAPIURL:    goDotEnvVariable("AUTH_API_URL"),

		PricePerKmCents:       goDotEnvVariable("PRICE_PER_KM_CENTS"),
		DailyStorageRateCents: goDotEnvVariable("DAILY_STORAGE_RATE_CENTS"),
		LateFeePerDayCents:    goDotEnvVariable("LATE_FEE_PER_DAY_CENTS"),
		StorageSharePercent:   goDotEnvVariable("STORAGE_SHARE_PERCENT"),

		WarehouseLat:     goDotEnvVariable("WAREHOUSE_LAT"),
		WarehouseLon:     goDotEnvVariable("WAREHOUSE_LON"),
		WarehouseAddress: goDotEnvVariable("WAREHOUSE_ADDRESS"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

// connectDB opens the database with lib/pq as the SQL driver so unique
// violations surface as *pq.Error in the repositories.
func connectDB(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	return gorm.Open(gorm_postgres.New(gorm_postgres.Config{
		DriverName: "postgres",
		DSN:        dsn,
	}), &gorm.Config{})
}
