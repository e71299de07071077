package repository

import (
	"sync"

	"attendly.io/entities"
	"attendly.io/infrastructure/database/connection/datastore"
	"attendly.io/infrastructure/database/repository/mongo"
)

var attendanceOnce = sync.Once{}

var attendanceRepository mongo.MongoRepository[entities.AttendanceEvent]

func AttendanceRepo() *mongo.MongoRepository[entities.AttendanceEvent] {
	attendanceOnce.Do(func() {
		attendanceRepository = mongo.MongoRepository[entities.AttendanceEvent]{Model: datastore.AttendanceModel}
	})
	return &attendanceRepository
}
