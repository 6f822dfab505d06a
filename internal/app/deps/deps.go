package deps

import (
	"context"
	"sync"
	"time"
	"userauth/internal/config"
	dl "userauth/internal/core/domain/logging"
	duow "userauth/internal/core/domain/unit_of_work"
	"userauth/internal/core/domain/user"
	uow "userauth/internal/db/unit_of_work"
	dbuser "userauth/internal/db/user"
	authtoken "userauth/internal/implementations/auth_token"
	"userauth/internal/implementations/email"
	"userauth/internal/implementations/logging"
	passwordhasher "userauth/internal/implementations/password_hasher"
	passwordresetter "userauth/internal/implementations/password_resetter"
	tokenstore "userauth/internal/implementations/token_store"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB    *pgxpool.Pool
	Redis *redis.Client

	Now func() time.Time

	UnitOfWork      duow.UnitOfWork
	UserRepository  user.UserRepository
	TokenRepository user.TokenRepository

	AuthTokenGenerator       user.AuthTokenGenerator
	PasswordHasher           user.PasswordHasher
	PasswordResetter         user.PasswordResetter
	PasswordResetTokenSender user.PasswordResetTokenSender
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()

	deps.UserRepository = dbuser.NewPgxUserRepository(deps.DB)
	deps.initTokenStore()

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.AuthTokenGenerator = authtoken.NewUUID()
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.PasswordResetter = passwordresetter.NewHMAC(
		deps.Config.Secret,
		time.Duration(deps.Config.PasswordResetValidDurationMinutes)*time.Minute,
		deps.Now,
	)
	deps.PasswordResetTokenSender = email.NewPasswordResetSender(
		deps.AwsConfig,
		deps.Config.AwsEmailSender,
		deps.Config.SiteName,
		&deps.Config.PublicBaseURL,
	)

	return deps, func() {
		closeFuncs := []func(){
			closeRedisClient,
			closePgxPool,
			closeLogger,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	if deps.Config.RedisURL == "" {
		return func() {}
	}
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initTokenStore() {
	if deps.Config.TokenStore == config.TokenStoreRedis {
		deps.TokenRepository = tokenstore.NewRedis(deps.Redis, deps.UserRepository)
		deps.UnitOfWork = uow.NewPgxUnitOfWorkWithTokenRepository(deps.DB, deps.TokenRepository)
		return
	}
	deps.TokenRepository = dbuser.NewPgxTokenRepository(deps.DB)
	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
}
