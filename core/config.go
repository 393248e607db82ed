package core

import (
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		AppName      string
		Build        string
		Env          string // DEV (local; default), TEST, QA, PROD
		Debug        bool
		TestMode     bool
		SecretKey    string
		RollbarToken string

		Server    ServerConfig
		Database  DatabaseConfig
		Dashboard DashboardConfig
	}

	ServerConfig struct {
		Host               string
		Address            string
		DebugHost          string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
	}

	DatabaseConfig struct {
		URL             string // takes precedence over the discrete settings below
		Engine          string
		Host            string
		Port            string
		Name            string
		User            string
		Password        string
		DisableTLS      bool
		MaxOpenConns    int
		ConnMaxIdleTime time.Duration
	}

	DashboardConfig struct {
		MaxTDAbsences      int
		MaxTPAbsences      int
		AnnouncementsLimit int
		RecentLimit        int
		QueryTimeout       time.Duration
		RequestTypes       []string

		// placeholders until the academic calendar is wired in
		AcademicPercentage       float64
		AcademicLevel            int
		AcademicLabel            string
		AcademicSemester         string
		AcademicCompletedCredits int
		AcademicTotalCredits     int
		AcademicRemainingWeeks   int
		HolidaysPercentage       float64
		HolidaysDaysUntilNext    int
	}
)

func (db DatabaseConfig) Address() string {
	return net.JoinHostPort(db.Host, db.Port)
}

func setDefaults(v *viper.Viper) {
	v.SetTypeByDefaultValue(true)

	v.SetDefault("appName", "IFAG Portal")
	v.SetDefault("build", "develop")
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("secretKey", "s3cr3t-k3y-f0r-l0c4l-d3v3l0pm3nt-0nly")
	v.SetDefault("rollbarToken", "")

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.jwtExpirationDelta", 7*24*time.Hour)

	v.SetDefault("database.url", "")
	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "ifag")
	v.SetDefault("database.user", "user")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.disableTLS", true)
	v.SetDefault("database.maxOpenConns", 10)
	v.SetDefault("database.connMaxIdleTime", 30*time.Second)

	v.SetDefault("dashboard.maxTDAbsences", 30)
	v.SetDefault("dashboard.maxTPAbsences", 30)
	v.SetDefault("dashboard.announcementsLimit", 5)
	v.SetDefault("dashboard.recentLimit", 5)
	v.SetDefault("dashboard.queryTimeout", 10*time.Second)
	v.SetDefault("dashboard.requestTypes", "Relevé papier,Duplicata") // comma-separated

	v.SetDefault("dashboard.academic.percentage", 65.0)
	v.SetDefault("dashboard.academic.level", 2)
	v.SetDefault("dashboard.academic.label", "Année en bonne voie")
	v.SetDefault("dashboard.academic.semester", "Semestre 2")
	v.SetDefault("dashboard.academic.completedCredits", 36)
	v.SetDefault("dashboard.academic.totalCredits", 60)
	v.SetDefault("dashboard.academic.remainingWeeks", 10)
	v.SetDefault("dashboard.holidays.percentage", 40.0)
	v.SetDefault("dashboard.holidays.daysUntilNext", 18)
}

// NewConfig reads the configuration from the environment.
// Keys are prefixed with the uppercased ENV value, eg. DEV_SERVER_ADDRESS.
// The database URL is also read from the unprefixed DATABASE_URL and NEON_DATABASE_URL variables.
func NewConfig() *Config {
	env := strings.ToUpper(CleanString(os.Getenv("ENV")))
	if env == "" {
		env = "DEV"
	}
	loadDotEnv(env)

	v := viper.New()
	setDefaults(v)
	if env == "TEST" {
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if v.GetString("database.url") == "" {
		for _, key := range []string{"DATABASE_URL", "NEON_DATABASE_URL"} {
			if url := os.Getenv(key); url != "" {
				v.Set("database.url", url)
				break
			}
		}
	}

	return &Config{
		AppName:      v.GetString("appName"),
		Build:        v.GetString("build"),
		Env:          env,
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		SecretKey:    v.GetString("secretKey"),
		RollbarToken: v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:               v.GetString("server.host"),
			Address:            v.GetString("server.address"),
			DebugHost:          v.GetString("server.debugHost"),
			ShutdownTimeout:    v.GetDuration("server.shutdownTimeout"),
			JWTExpirationDelta: v.GetDuration("server.jwtExpirationDelta"),
		},
		Database: DatabaseConfig{
			URL:             v.GetString("database.url"),
			Engine:          v.GetString("database.engine"),
			Host:            v.GetString("database.host"),
			Port:            v.GetString("database.port"),
			Name:            v.GetString("database.name"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DisableTLS:      v.GetBool("database.disableTLS"),
			MaxOpenConns:    v.GetInt("database.maxOpenConns"),
			ConnMaxIdleTime: v.GetDuration("database.connMaxIdleTime"),
		},
		Dashboard: DashboardConfig{
			MaxTDAbsences:            v.GetInt("dashboard.maxTDAbsences"),
			MaxTPAbsences:            v.GetInt("dashboard.maxTPAbsences"),
			AnnouncementsLimit:       v.GetInt("dashboard.announcementsLimit"),
			RecentLimit:              v.GetInt("dashboard.recentLimit"),
			QueryTimeout:             v.GetDuration("dashboard.queryTimeout"),
			RequestTypes:             listSetting(v, "dashboard.requestTypes"),
			AcademicPercentage:       v.GetFloat64("dashboard.academic.percentage"),
			AcademicLevel:            v.GetInt("dashboard.academic.level"),
			AcademicLabel:            v.GetString("dashboard.academic.label"),
			AcademicSemester:         v.GetString("dashboard.academic.semester"),
			AcademicCompletedCredits: v.GetInt("dashboard.academic.completedCredits"),
			AcademicTotalCredits:     v.GetInt("dashboard.academic.totalCredits"),
			AcademicRemainingWeeks:   v.GetInt("dashboard.academic.remainingWeeks"),
			HolidaysPercentage:       v.GetFloat64("dashboard.holidays.percentage"),
			HolidaysDaysUntilNext:    v.GetInt("dashboard.holidays.daysUntilNext"),
		},
	}
}

// listSetting reads a comma-separated list setting, skipping blank items.
func listSetting(v *viper.Viper, key string) []string {
	var list []string
	for _, item := range strings.Split(v.GetString(key), ",") {
		if item = CleanString(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

// loadDotEnv loads $CONFIG_DIR/.env.<env> if it exists (ignored if it does not).
func loadDotEnv(env string) {
	dir := os.Getenv("CONFIG_DIR")
	if dir == "" {
		dir = "config"
	}
	path := filepath.Join(dir, ".env."+strings.ToLower(env))
	if _, err := os.Stat(path); err == nil {
		if err := godotenv.Load(path); err != nil {
			log.Fatalf("config.godotenv(%s): %v", path, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", path, err)
	}
}

func (c *Config) String() string {
	return fmt.Sprintf("%s (env=%s build=%s debug=%t)", c.AppName, c.Env, c.Build, c.Debug)
}
