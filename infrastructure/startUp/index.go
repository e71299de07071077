package startup

import (
	"attendly.io/infrastructure/biometric"
	"attendly.io/infrastructure/database"
	"attendly.io/infrastructure/database/connection/datastore"
	"attendly.io/infrastructure/ipresolver/maxmind"
	"attendly.io/infrastructure/logger"
)

// Used to start services such as loggers, databases, queues, etc.
func StartServices() {
	logger.InitializeLogger()
	database.SetUpDatabase()
	biometric.InitialiseBiometricService()
	(&maxmind.MaxMindIPResolver{}).ConnectToDB()
}

// Used to clean up after services that have been shutdown.
func CleanUpServices() {
	datastore.CleanUp()
}
