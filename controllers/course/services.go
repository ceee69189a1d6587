package controllers

import (
	"lms/config"
	"lms/database"
	courseService "lms/services/course"
	"lms/utils"
	"sync"
	"time"
)

// scoreCache is the single cache instance in front of the aggregators,
// shared by score reads and invalidated by every progress write
var (
	scoreCache     *courseService.ScoreCache
	scoreCacheOnce sync.Once
)

func getScoreCache() *courseService.ScoreCache {
	scoreCacheOnce.Do(func() {
		size, ttl := 256, 30
		if config.AppConfig != nil {
			size = config.AppConfig.ScoreCacheSize
			ttl = config.AppConfig.ScoreCacheTTL
		}
		scoreCache = courseService.NewScoreCache(size, time.Duration(ttl)*time.Second)
	})
	return scoreCache
}

func newScoreService() *courseService.ScoreService {
	return courseService.NewScoreService(database.Database.Db)
}

func newBadgeService() *courseService.BadgeService {
	return courseService.NewBadgeService(database.Database.Db)
}

func newCertificateService() *courseService.CertificateService {
	svc := courseService.NewCertificateService(database.Database.Db)
	svc.Notifier = &utils.CertNotifier{}
	return svc
}

func newProgressStore() *courseService.ProgressStore {
	db := database.Database.Db
	hook := courseService.NewCompletionHook(db, newBadgeService(), newCertificateService())
	return courseService.NewProgressStore(db, hook, getScoreCache())
}
