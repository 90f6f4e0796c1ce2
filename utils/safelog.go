// utils/safelog.go
// ============================================================================
// SAFE LOGGING - Masks sensitive data in production
// ============================================================================
// Financial amounts and user identifiers must never land in production logs
// in the clear. These helpers mask them when running in release mode.
// ============================================================================

package utils

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
	"time"
)

var (
	// IsProduction switches masking on.
	IsProduction = os.Getenv("GIN_MODE") == "release" ||
		os.Getenv("ENVIRONMENT") == "production" ||
		os.Getenv("ENV") == "production"

	LogLevel = getLogLevel()
)

const (
	LogLevelDebug = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func getLogLevel() int {
	level := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	switch level {
	case "DEBUG":
		return LogLevelDebug
	case "WARN", "WARNING":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

var (
	// Decimal values that look like money
	amountRegex = regexp.MustCompile(`\b\d{2,}([.,]\d{1,2})?\b`)

	// Full UUIDs (user/transaction identifiers)
	uuidRegex = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
)

// MaskString masks amounts and shortens identifiers in a log message.
func MaskString(input string) string {
	if !IsProduction {
		return input
	}

	result := uuidRegex.ReplaceAllStringFunc(input, shortenID)
	result = amountRegex.ReplaceAllString(result, "***")
	return result
}

func shortenID(id string) string {
	if len(id) > 8 {
		return id[:8] + "..."
	}
	return "***"
}

// MaskAmount masks a financial amount.
func MaskAmount(amount float64) string {
	if IsProduction {
		return "***"
	}
	return fmt.Sprintf("%.2f", amount)
}

// MaskID partially masks an identifier, keeping the first 8 characters.
func MaskID(id string) string {
	if !IsProduction {
		return id
	}
	return shortenID(id)
}

// SafeDebug logs a debug message (only when LOG_LEVEL=DEBUG).
func SafeDebug(format string, args ...interface{}) {
	if LogLevel > LogLevelDebug {
		return
	}
	log.Printf("[DEBUG] %s", MaskString(fmt.Sprintf(format, args...)))
}

// SafeInfo logs an informational message.
func SafeInfo(format string, args ...interface{}) {
	if LogLevel > LogLevelInfo {
		return
	}
	log.Printf("[INFO] %s", MaskString(fmt.Sprintf(format, args...)))
}

// SafeWarn logs a warning.
func SafeWarn(format string, args ...interface{}) {
	if LogLevel > LogLevelWarn {
		return
	}
	log.Printf("[WARN] %s", MaskString(fmt.Sprintf(format, args...)))
}

// SafeError logs an error.
func SafeError(format string, args ...interface{}) {
	log.Printf("[ERROR] %s", MaskString(fmt.Sprintf(format, args...)))
}

// LogAPIRequest records one HTTP request. The path can embed a user UUID
// (GET /users/:id/score), so it runs through MaskString.
func LogAPIRequest(method string, path string, statusCode int, duration time.Duration) {
	log.Printf("📨 %s %s - %d (%v)", method, MaskString(path), statusCode, duration)
}

// LogAnalysisRun records one pipeline run without exposing amounts. The
// composite score is the only number allowed through: it is already a
// normalized 0-100 indicator.
func LogAnalysisRun(userID string, period string, score int, duration time.Duration) {
	log.Printf("[Analyzer] run complete - User: %s Period: %s Score: %d Duration: %v",
		MaskID(userID), period, score, duration)
}

// GetEnvMode returns the current environment mode.
func GetEnvMode() string {
	if IsProduction {
		return "production"
	}
	return "development"
}

// LogStartup logs application startup information.
func LogStartup(appName string, version string, port string) {
	log.Printf("🚀 %s v%s starting...", appName, version)
	log.Printf("   Mode: %s", GetEnvMode())
	log.Printf("   Port: %s", port)
	if IsProduction {
		log.Printf("   ⚠️  Production mode: Sensitive data will be masked in logs")
	}
}
