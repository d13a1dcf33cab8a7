// Package factory wires configuration, external clients, and services
// into a running application, and owns their shutdown order.
package factory

import (
	"context"
	"fmt"
	"sync"

	"passwordless-auth/internal/account"
	"passwordless-auth/internal/challenge"
	"passwordless-auth/internal/client"
	"passwordless-auth/internal/config"
	"passwordless-auth/internal/events"
	"passwordless-auth/internal/identity"
	"passwordless-auth/internal/notification"
	"passwordless-auth/internal/util"
)

type Factory struct {
	config *config.Config

	redisClient   *client.RedisClient
	kafkaProducer *client.KafkaProducer

	backend   *identity.CognitoBackend
	sender    notification.Sender
	publisher *events.Publisher

	stages  *challenge.Stages
	decider challenge.Decider
	hooks   *challenge.Hooks

	accountService *account.Service

	closeOnce sync.Once
}

// NewFactory loads configuration and initializes every dependency the
// application needs.
func NewFactory() (*Factory, error) {
	cfg := config.LoadConfig()
	logger := util.Init(cfg.Environment, cfg.Logging.Level, cfg.Logging.Format)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	f := &Factory{config: cfg}

	ctx := context.Background()
	awsCfg, err := client.LoadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	f.backend = identity.NewCognitoBackend(
		client.NewCognitoClient(awsCfg),
		cfg.Cognito.UserPoolID,
		cfg.Cognito.ClientID,
		logger,
	)

	if cfg.SES.SenderAddress != "" {
		f.sender = notification.NewSESSender(client.NewSESClient(awsCfg), cfg.SES.SenderAddress, logger)
	} else {
		logger.Warn("no SES sender address configured, using console delivery")
		f.sender = notification.NewConsoleSender(logger)
	}

	var store account.Store
	switch cfg.Accounts.Store {
	case "redis":
		redisClient, err := client.NewRedisClient(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("initialize redis: %w", err)
		}
		f.redisClient = redisClient
		store = account.NewRedisStore(redisClient)
	case "dynamodb":
		store = account.NewDynamoStore(client.NewDynamoDBClient(awsCfg), cfg.Accounts.TableName)
	}

	if cfg.Kafka.Enabled {
		f.kafkaProducer = client.NewKafkaProducer(cfg, logger)
		f.publisher = events.NewPublisher(f.kafkaProducer, logger)
		util.Info("kafka event publishing enabled", util.String("topic", cfg.Kafka.Topic))
	}

	f.stages = challenge.NewStages(challenge.NewGenerator(), f.sender, cfg.Challenge.CodeTTL, logger)
	f.decider = challenge.NewDecider(cfg.Challenge.MaxAttempts)
	f.hooks = challenge.NewHooks(f.backend, logger)
	f.accountService = account.NewService(store, f.backend, f.publisher, logger)

	util.Info("factory initialized",
		util.String("environment", cfg.Environment),
		util.String("account_store", cfg.Accounts.Store),
		util.Bool("kafka_enabled", cfg.Kafka.Enabled),
	)
	return f, nil
}

func (f *Factory) Config() *config.Config            { return f.config }
func (f *Factory) AccountService() *account.Service  { return f.accountService }
func (f *Factory) Stages() *challenge.Stages         { return f.stages }
func (f *Factory) Decider() challenge.Decider        { return f.decider }
func (f *Factory) Hooks() *challenge.Hooks           { return f.hooks }
func (f *Factory) Publisher() *events.Publisher      { return f.publisher }
func (f *Factory) Backend() *identity.CognitoBackend { return f.backend }

// HealthCheck probes every stateful client that is configured.
func (f *Factory) HealthCheck(ctx context.Context) map[string]error {
	healthErrors := make(map[string]error)
	if f.redisClient != nil {
		if err := f.redisClient.HealthCheck(ctx); err != nil {
			healthErrors["redis"] = err
		}
	}
	return healthErrors
}

func (f *Factory) Close() error {
	f.closeOnce.Do(func() {
		util.Info("shutting down factory")

		if f.kafkaProducer != nil {
			if err := f.kafkaProducer.Close(); err != nil {
				util.Error("failed to close kafka producer", util.ErrorField(err))
			}
		}
		if f.redisClient != nil {
			if err := f.redisClient.Close(); err != nil {
				util.Error("failed to close redis client", util.ErrorField(err))
			}
		}
		util.Sync()
	})
	return nil
}
