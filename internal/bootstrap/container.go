// Package bootstrap wires configuration, infrastructure and use cases into a
// ready to serve container shared by the API and the CLI.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"pei_compras/internal/adapter/persistence/repository"
	"pei_compras/internal/infrastructure/config"
	"pei_compras/internal/infrastructure/database"
	"pei_compras/internal/infrastructure/email"
	"pei_compras/internal/infrastructure/health"
	"pei_compras/internal/infrastructure/llm"
	redisinfra "pei_compras/internal/infrastructure/redis"
	"pei_compras/internal/infrastructure/search"
	"pei_compras/internal/usecase"
	"pei_compras/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

type Container struct {
	Config config.Config
	Logger *zap.Logger

	Dynamo *dynamodb.Client
	Redis  *redisinfra.Client

	Requests *repository.PurchaseRequestDynamoRepository
	RFQs     *repository.RFQDynamoRepository
	Registry *repository.SupplierDynamoRepository

	Pipeline   *usecase.PipelineUseCase
	RFQ        *usecase.RFQUseCase
	Comparison *usecase.PriceComparisonUseCase
	Health     *health.Checker

	smtp *email.SMTPSender
}

// New builds the container. Only DynamoDB is mandatory: without Redis the
// search cache is skipped, without SMTP credentials RFQs stay as drafts, and
// without a Serper key discovery uses the registry alone.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	ddb, err := database.ConnectDynamoDB(ctx, logger)
	if err != nil {
		return nil, err
	}
	c.Dynamo = ddb
	if cfg.CreateTables {
		if err := database.EnsureTables(ctx, ddb, Tables(cfg), logger); err != nil {
			return nil, fmt.Errorf("ensure tables: %w", err)
		}
	}

	c.Requests = repository.NewPurchaseRequestDynamoRepository(ddb, cfg.PurchaseRequestsTable)
	c.RFQs = repository.NewRFQDynamoRepository(ddb, cfg.RFQsTable, cfg.RFQCountersTable)
	c.Registry = repository.NewSupplierDynamoRepository(ddb, cfg.SuppliersTable)

	if cfg.RedisAddr != "" {
		rc, err := redisinfra.NewClient(redisinfra.Config{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}, logger)
		if err != nil {
			logger.Warn("redis unavailable, search cache disabled", zap.Error(err))
		} else {
			c.Redis = rc
		}
	}

	completion := llm.NewOpenAIClient(llm.Config{
		APIKey:    cfg.OpenAIAPIKey,
		BaseURL:   cfg.OpenAIBaseURL,
		ModelMini: cfg.OpenAIModelMini,
		ModelFull: cfg.OpenAIModelFull,
	}, logger)

	web, marketplace := c.searchers()
	sender := c.emailSender()

	timeouts := usecase.Timeouts{LLM: cfg.LLMTimeout, Search: cfg.SearchTimeout, Email: cfg.EmailTimeout}

	extraction := usecase.NewExtractionUseCase(completion, timeouts, logger)
	discovery := usecase.NewDiscoveryUseCase(c.Registry, web, marketplace, completion, usecase.DiscoveryConfig{
		Locale:  cfg.SearchLocale,
		Region:  cfg.SearchRegion,
		Workers: cfg.SearchWorkers,
	}, timeouts, logger)
	c.RFQ = usecase.NewRFQUseCase(c.RFQs, c.Requests, c.Registry, completion, sender, usecase.RFQConfig{
		ContactEmail: cfg.ContactEmail,
		ContactPhone: cfg.ContactPhone,
		Workers:      cfg.DispatchWorkers,
	}, timeouts, nil, logger)
	c.Pipeline = usecase.NewPipelineUseCase(extraction, discovery, c.RFQ, c.Requests, c.RFQs, usecase.PipelineConfig{}, nil, logger)
	c.Comparison = usecase.NewPriceComparisonUseCase(completion, c.Requests, discovery, timeouts, logger)

	c.Health = c.healthChecker()
	return c, nil
}

func (c *Container) searchers() (web, marketplace interfaces.ISupplierSearch) {
	sc := search.Config{APIKey: c.Config.SerperAPIKey, Country: c.Config.SearchCountry, Timeout: c.Config.SearchTimeout}
	webClient := search.NewSerperClient(search.KindWeb, sc, c.Logger)
	shopClient := search.NewSerperClient(search.KindShopping, sc, c.Logger)
	if !c.Config.WebSearchEnabled() {
		c.Logger.Warn("SERPER_API_KEY not set, discovery will use the supplier registry only")
	}
	if c.Redis == nil {
		return webClient, shopClient
	}
	return search.NewCachedSearch(webClient, c.Redis, webClient.Name(), c.Config.SearchCacheTTL, c.Logger),
		search.NewCachedSearch(shopClient, c.Redis, shopClient.Name(), c.Config.SearchCacheTTL, c.Logger)
}

func (c *Container) emailSender() interfaces.IEmailSender {
	ec := email.Config{
		Host:     c.Config.SMTPHost,
		Port:     c.Config.SMTPPort,
		Username: c.Config.SMTPUser,
		Password: c.Config.SMTPPassword,
		From:     c.Config.SMTPFrom,
		FromName: "Compras PEI",
	}
	if !ec.Configured() {
		c.Logger.Warn("SMTP credentials not set, RFQs will not be emailed")
		return email.NewDisabledSender(c.Logger)
	}
	sender, err := email.NewSMTPSender(ec, c.Logger)
	if err != nil {
		c.Logger.Warn("smtp sender unavailable, RFQs will not be emailed", zap.Error(err))
		return email.NewDisabledSender(c.Logger)
	}
	c.smtp = sender
	return sender
}

func (c *Container) healthChecker() *health.Checker {
	checker := health.NewChecker(c.Config.AppVersion)
	table := c.Config.PurchaseRequestsTable
	checker.Register("dynamodb", true, func(ctx context.Context) error {
		_, err := c.Dynamo.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)})
		return err
	})
	if c.Config.RedisAddr != "" {
		var probe health.ProbeFunc
		if c.Redis != nil {
			probe = c.Redis.Ping
		}
		checker.Register("redis", false, probe)
	}
	checker.Register("smtp", false, smtpCheck(c.Config.SMTPHost != "" && c.Config.SMTPUser != "" && c.Config.SMTPPassword != "", c.smtp))
	return checker
}

var errSMTPUnavailable = errors.New("smtp sender unavailable")

// smtpCheck dials the relay. A nil check reports smtp as not configured.
func smtpCheck(configured bool, sender *email.SMTPSender) health.ProbeFunc {
	switch {
	case !configured:
		return nil
	case sender == nil:
		return func(context.Context) error { return errSMTPUnavailable }
	default:
		return sender.Ping
	}
}

// Close releases the connections opened by New.
func (c *Container) Close() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("redis close failed", zap.Error(err))
		}
	}
	_ = c.Logger.Sync()
}

// Tables lists the DynamoDB tables the service reads and writes.
func Tables(cfg config.Config) []database.TableSpec {
	return []database.TableSpec{
		{Name: cfg.PurchaseRequestsTable, Key: "id"},
		{Name: cfg.RFQsTable, Key: "id", Index: "purchase_request_id"},
		{Name: cfg.RFQCountersTable, Key: "id"},
		{Name: cfg.SuppliersTable, Key: "id"},
	}
}
