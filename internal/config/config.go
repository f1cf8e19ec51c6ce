package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppEnv   string
	TZ       string
	HTTPAddr string

	HarvestBaseURL   string
	HarvestToken     string
	HarvestAccountID string
	UserAgent        string

	SlackBaseURL string
	SlackToken   string

	BillableRoles  []string
	ThresholdHours float64
	Channel        string

	ReminderText     string
	EscalationHeader string
	AllSubmittedText string

	CronSpec    string
	HTTPTimeout time.Duration
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func f64(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func dur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func parseStrings(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func Load() Config {
	cfg := Config{
		AppEnv:   getenv("APP_ENV", "dev"),
		TZ:       getenv("APP_TZ", "Europe/London"),
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),

		HarvestBaseURL:   getenv("HARVEST_BASE_URL", "https://api.harvestapp.com"),
		HarvestToken:     getenv("HARVEST_TOKEN", ""),
		HarvestAccountID: getenv("HARVEST_ACCOUNT_ID", ""),
		UserAgent:        getenv("HARVEST_USER_AGENT", "timesheet-reminder"),

		SlackBaseURL: getenv("SLACK_BASE_URL", "https://slack.com"),
		SlackToken:   getenv("SLACK_TOKEN", ""),

		BillableRoles:  parseStrings(getenv("BILLABLE_ROLES", "Developer")),
		ThresholdHours: f64("THRESHOLD_HOURS", 35),
		Channel:        getenv("SLACK_CHANNEL", "#timesheets"),

		ReminderText:     getenv("REMINDER_TEXT", "Please make sure your timesheet is submitted by 13:30 on Friday."),
		EscalationHeader: getenv("ESCALATION_HEADER", "These are the people yet to submit time sheets:"),
		AllSubmittedText: getenv("ALL_SUBMITTED_TEXT", "Everyone has submitted their timesheets!"),

		CronSpec:    getenv("CRON_SPEC", "0,30 * * * *"),
		HTTPTimeout: dur("HTTP_TIMEOUT", 15*time.Second),
	}

	if loc, err := time.LoadLocation(cfg.TZ); err == nil {
		time.Local = loc
	} else {
		log.Printf("warning: cannot load TZ %s: %v", cfg.TZ, err)
	}

	return cfg
}
