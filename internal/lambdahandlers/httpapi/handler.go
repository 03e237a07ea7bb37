package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/mrled/humantime/internal/logger"
	"github.com/mrled/humantime/internal/model"
	"github.com/mrled/humantime/internal/repository"
	"github.com/mrled/humantime/internal/repository/dynamorepo"
	"github.com/mrled/humantime/internal/timeparse"
	"github.com/mrled/humantime/internal/usecase/resolve"
	"github.com/mrled/humantime/pkg/calendar"
	"github.com/mrled/humantime/pkg/clock"
	"github.com/mrled/humantime/pkg/phrasebook"
	"github.com/mrled/humantime/pkg/timefmt"
)

// Handler holds the dependencies for the httpapi Lambda handler
type Handler struct {
	resolver      *resolve.ResolveUseCase
	location      *time.Location
	defaultLocale string
	clock         clock.Clock
	log           *slog.Logger
}

// Config holds the collaborators of a Handler. Zero fields get defaults:
// no repository (built-in phrasebooks only), UTC, English, the real clock
// and the default slog logger.
type Config struct {
	Repository    model.PhrasebookRepository
	Location      *time.Location
	DefaultLocale string
	Clock         clock.Clock
	Logger        *slog.Logger
}

// HumanizeResponse represents the JSON response of /v1/humanize
type HumanizeResponse struct {
	Text       string `json:"text"`
	Applicable bool   `json:"applicable"`
	Locale     string `json:"locale"`
	Scenario   string `json:"scenario,omitempty"`
}

// CompareResponse represents the JSON response of /v1/compare
type CompareResponse struct {
	SameYear    bool `json:"sameYear"`
	SameDay     bool `json:"sameDay"`
	SameWeek    bool `json:"sameWeek"`
	DayDistance int  `json:"dayDistance"`
}

// New creates a handler from explicit collaborators
func New(cfg Config) *Handler {
	h := &Handler{
		resolver:      resolve.NewResolveUseCase(cfg.Repository),
		location:      cfg.Location,
		defaultLocale: cfg.DefaultLocale,
		clock:         cfg.Clock,
		log:           cfg.Logger,
	}
	if h.location == nil {
		h.location = time.UTC
	}
	if h.defaultLocale == "" {
		h.defaultLocale = resolve.DefaultLocale
	}
	if h.clock == nil {
		h.clock = clock.Real{}
	}
	if h.log == nil {
		h.log = slog.Default()
	}
	return h
}

// NewHandler creates a new httpapi handler configured from the environment
func NewHandler() (*Handler, error) {
	// Initialize logger with executable name for filtering
	log := logger.NewDefaultLogger()
	log = logger.WithExecutable(log, "httpapi")
	logger.SetDefault(log)

	cfg := Config{
		DefaultLocale: os.Getenv("HUMANTIME_LOCALE"),
		Logger:        log,
	}

	if tz := os.Getenv("HUMANTIME_TZ"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid HUMANTIME_TZ %q: %w", tz, err)
		}
		cfg.Location = loc
		log.Info("Using time zone", slog.String("tz", tz))
	}

	// The phrasebook table is optional; without it only built-ins are served
	if dynamoTable := os.Getenv("DYNAMODB_TABLE"); dynamoTable != "" {
		dynamoEndpoint := os.Getenv("DYNAMODB_ENDPOINT")
		if dynamoEndpoint == "" && os.Getenv("AWS_REGION") == "" {
			return nil, fmt.Errorf("AWS_REGION environment variable is required when DYNAMODB_ENDPOINT is not set")
		}

		ctx := context.Background()
		client, err := repository.NewDynamoClient(ctx, dynamoEndpoint)
		if err != nil {
			log.Error("Failed to load AWS config", slog.String("error", err.Error()))
			return nil, err
		}
		repo := dynamorepo.NewDynamoRepository(client, dynamoTable)
		cfg.Repository = repo
		log.Info("DynamoDB phrasebook repository initialized",
			slog.String("table", dynamoTable),
			slog.String("endpoint", dynamoEndpoint))

		// Verify DynamoDB connection
		records, err := repo.List(ctx)
		if err != nil {
			log.Warn("Failed to list phrasebooks during startup", slog.String("error", err.Error()))
		} else {
			log.Info("Successfully connected to DynamoDB", slog.Int("phrasebook_count", len(records)))
		}
	}

	return New(cfg), nil
}

// Handle processes API Gateway HTTP requests
func (h *Handler) Handle(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	requestLogger := logger.WithLambda(h.log,
		os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		os.Getenv("AWS_LAMBDA_FUNCTION_VERSION"),
		request.RequestContext.RequestID)

	// For API Gateway v2, the path is in RequestContext.HTTP.Path
	path := request.RequestContext.HTTP.Path
	if path == "" {
		path = request.RawPath
	}
	path = strings.TrimPrefix(path, "/api")

	requestLogger.Info("Incoming request",
		slog.String("method", request.RequestContext.HTTP.Method),
		slog.String("path", path),
		slog.Any("query", request.QueryStringParameters))

	switch path {
	case "/v1/humanize":
		return h.handleHumanize(ctx, requestLogger, request)
	case "/v1/compare":
		return h.handleCompare(requestLogger, request)
	default:
		requestLogger.Warn("Path not matched", slog.String("path", path))
		return errorResponseV2(404, fmt.Sprintf("Unknown endpoint: %s", path))
	}
}

func (h *Handler) handleHumanize(ctx context.Context, log *slog.Logger, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	if resp, ok := requireGet(log, request); !ok {
		return resp, nil
	}
	query := request.QueryStringParameters

	loc, err := h.queryLocation(query["tz"])
	if err != nil {
		return errorResponseV2(400, err.Error())
	}
	target, now, err := h.queryInstants(query, "target", "now", loc)
	if err != nil {
		return errorResponseV2(400, err.Error())
	}

	locale := query["locale"]
	if locale == "" {
		locale = h.defaultLocale
	}
	pb, source, err := h.resolver.Resolve(ctx, locale)
	if errors.Is(err, phrasebook.ErrUnknownLocale) {
		return errorResponseV2(400, err.Error())
	}
	if err != nil {
		log.Error("Failed to resolve phrasebook", slog.String("locale", locale), slog.String("error", err.Error()))
		return errorResponseV2(500, "failed to resolve phrasebook")
	}
	log = logger.WithLocale(log, pb.Locale())

	formatter := timefmt.New(timefmt.WithPhrasebook(pb), timefmt.WithLocation(loc))
	response := HumanizeResponse{Locale: pb.Locale(), Applicable: true}

	switch mode := query["mode"]; mode {
	case "", "show":
		response.Text = formatter.ShowTime(target, now)
		response.Scenario = string(formatter.Scenario(target, now))
	case "interval":
		hours := false
		if raw := query["hours"]; raw != "" {
			if hours, err = strconv.ParseBool(raw); err != nil {
				return errorResponseV2(400, fmt.Sprintf("invalid hours parameter %q", raw))
			}
		}
		response.Text, response.Applicable = formatter.DescribeInterval(target, now, hours)
	case "since":
		response.Text = formatter.Since(target, now)
	default:
		return errorResponseV2(400, fmt.Sprintf("invalid mode %q, want show, interval or since", mode))
	}

	log.Debug("Humanized",
		slog.String("source", string(source)),
		slog.Time("target", target),
		slog.Time("now", now),
		slog.String("text", response.Text))
	return jsonResponseV2(log, response)
}

func (h *Handler) handleCompare(log *slog.Logger, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	if resp, ok := requireGet(log, request); !ok {
		return resp, nil
	}
	query := request.QueryStringParameters

	loc, err := h.queryLocation(query["tz"])
	if err != nil {
		return errorResponseV2(400, err.Error())
	}
	a, b, err := h.queryInstants(query, "a", "b", loc)
	if err != nil {
		return errorResponseV2(400, err.Error())
	}
	cmp := calendar.New(loc, calendar.ISOWeek)
	if raw := query["weekStart"]; raw != "" {
		wd, err := calendar.ParseWeekday(raw)
		if err != nil {
			return errorResponseV2(400, err.Error())
		}
		cmp = calendar.New(loc, calendar.StartingOn(wd))
	}

	return jsonResponseV2(log, CompareResponse{
		SameYear:    cmp.SameYear(a, b),
		SameDay:     cmp.SameDay(a, b),
		SameWeek:    cmp.SameWeek(a, b),
		DayDistance: cmp.DayDistance(a, b),
	})
}

// queryInstants parses the required first parameter and the optional second
// one, which defaults to the clock's current time
func (h *Handler) queryInstants(query map[string]string, first, second string, loc *time.Location) (time.Time, time.Time, error) {
	if query[first] == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%s parameter is required", first)
	}
	a, err := timeparse.Parse(query[first], loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%s: %w", first, err)
	}
	b, err := timeparse.ParseOr(query[second], loc, h.clock.Now())
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%s: %w", second, err)
	}
	return a, b, nil
}

func (h *Handler) queryLocation(tz string) (*time.Location, error) {
	if tz == "" {
		return h.location, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid tz %q", tz)
	}
	return loc, nil
}

func requireGet(log *slog.Logger, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, bool) {
	httpMethod := request.RequestContext.HTTP.Method
	if httpMethod == "GET" {
		return events.APIGatewayV2HTTPResponse{}, true
	}
	log.Warn("Method validation failed", slog.String("received_method", httpMethod))
	resp, _ := errorResponseV2(405, fmt.Sprintf("Method not allowed. Only GET is supported for this endpoint (received: %s)", httpMethod))
	return resp, false
}

func jsonResponseV2(log *slog.Logger, v any) (events.APIGatewayV2HTTPResponse, error) {
	responseBody, err := json.Marshal(v)
	if err != nil {
		log.Error("Failed to marshal response", slog.String("error", err.Error()))
		return errorResponseV2(500, "failed to generate response")
	}

	return events.APIGatewayV2HTTPResponse{
		StatusCode: 200,
		Body:       string(responseBody),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

// errorResponseV2 creates a standardized error response for API Gateway v2
func errorResponseV2(statusCode int, message string) (events.APIGatewayV2HTTPResponse, error) {
	errorBody := map[string]string{
		"error": message,
	}
	body, _ := json.Marshal(errorBody)

	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Body:       string(body),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}
