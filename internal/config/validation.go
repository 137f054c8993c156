package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

// RequiredSites is the number of bookmakers a league must list.
const RequiredSites = 3

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Register custom validation functions
	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("fetchmode", validateFetchMode)
	_ = v.RegisterValidation("scorer", validateScorer)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	// Additional cross-field validations
	if err := validateCrossField(cfg); err != nil {
		return err
	}

	return nil
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	env := fl.Field().String()
	switch env {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	level := fl.Field().String()
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateFetchMode validates the page retrieval mode
func validateFetchMode(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "browser", "http":
		return true
	default:
		return false
	}
}

// validateScorer validates the alignment scorer name
func validateScorer(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "levenshtein", "sequence":
		return true
	default:
		return false
	}
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	league, err := cfg.ActiveLeague()
	if err != nil {
		return fmt.Errorf("selected_league: %w", err)
	}

	if len(league.Sites) != RequiredSites {
		return fmt.Errorf("league %q must list exactly %d sites, got %d", cfg.SelectedLeague, RequiredSites, len(league.Sites))
	}

	for name, l := range cfg.Leagues {
		if l.EndIndex != 0 && l.EndIndex <= l.StartIndex {
			return fmt.Errorf("league %q: end_index must be 0 or greater than start_index", name)
		}
	}

	if cfg.Odds.Min >= cfg.Odds.Max {
		return fmt.Errorf("odds.min must be less than odds.max")
	}

	if cfg.Watch.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Watch.Schedule); err != nil {
			return fmt.Errorf("invalid watch.schedule %q: %w", cfg.Watch.Schedule, err)
		}
	}

	if tg := cfg.Notify.Telegram; tg.Enabled && (tg.BotToken == "" || tg.ChatID == 0) {
		return fmt.Errorf("notify.telegram requires bot_token and chat_id when enabled")
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg string
	for _, fieldError := range validationErrors {
		field := fieldError.StructField()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			errMsg += fmt.Sprintf("- Field '%s' is required\n", field)
		case "url":
			errMsg += fmt.Sprintf("- Field '%s' must be a valid URL, got '%v'\n", field, value)
		case "min", "max":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "fetchmode":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: browser, http, got '%v'\n", field, value)
		case "scorer":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: levenshtein, sequence, got '%v'\n", field, value)
		default:
			errMsg += fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg)
}
