package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyPDMConfigPath string = "PDM_CONFIG_PATH"

	EnvKeyPDMDBType string = "PDM_DB_TYPE"
	EnvKeyPDMDbPath string = "PDM_DB_PATH"
	EnvKeyPDMDbDSN  string = "PDM_DB_DSN"

	EnvKeyPDMHttpHostPort string = "PDM_HTTP_HOST_PORT"
	EnvKeyPDMGrpcHostPort string = "PDM_GRPC_HOST_PORT"

	EnvKeyPDMDefaultRate  string = "PDM_DEFAULT_RATE"
	EnvKeyPDMDefaultBurst string = "PDM_DEFAULT_BURST"

	EnvKeyPDMModelPath       string = "PDM_MODEL_PATH"
	EnvKeyPDMModelEstimators string = "PDM_MODEL_ESTIMATORS"
	EnvKeyPDMModelMaxDepth   string = "PDM_MODEL_MAX_DEPTH"
	EnvKeyPDMModelWatch      string = "PDM_MODEL_WATCH"

	EnvKeyPDMRetentionDays string = "PDM_RETENTION_DAYS"

	LoggerNamePDMCore        string = "pdm_core"
	LoggerNameRestfulServer  string = "restful_server"
	LoggerNameGrpcServer     string = "grpc_server"
	LoggerFieldPDMCategory   string = "category"
	LoggerCategorySignal     string = "signal"
	LoggerCategoryClassifier string = "classifier"
	LoggerCategoryModel      string = "model"
	LoggerCategoryPrediction string = "prediction"
	LoggerCategoryAlert      string = "alert"
	LoggerCategoryHistory    string = "history"
	LoggerCategoryMaint      string = "maintenance"

	// days accepted by the history endpoints after clamping
	MinHistoryDays int = 1
	MaxHistoryDays int = 90

	DefaultRetentionDays int = 90
)
