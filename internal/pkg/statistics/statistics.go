package statistics

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/hangarline/hangarline/app/models"
	"github.com/hangarline/hangarline/internal/pkg/cache"
	"github.com/hangarline/hangarline/internal/pkg/database"
)

const (
	CacheKeyOwners            = "statistics:owners:total"
	CacheKeyAircraft          = "statistics:aircraft:total"
	CacheKeyCompletedRequests = "statistics:requests:completed"
	CacheExpiration           = 30 * time.Minute
)

// StatisticsData holds the headline figures shown on the marketing pages.
type StatisticsData struct {
	TotalOwners       int
	AircraftManaged   int
	RequestsCompleted int
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// UpdateCacheIfNeeded refreshes the cached figures at most once per interval.
// Called from the home page handler; failures only log since the page renders
// fine without numbers.
func UpdateCacheIfNeeded() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	if time.Since(lastCacheUpdate) <= cacheUpdateInterval {
		return
	}

	if err := UpdateStatisticsCache(); err != nil {
		log.Printf("[WARN] statistics cache refresh failed: %v", err)
		return
	}
	lastCacheUpdate = time.Now()
}

// UpdateStatisticsCache recounts the headline figures and stores them in Redis.
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var owners int64
	if err := db.Model(&models.User{}).Where("role = ?", models.ROLE_MEMBER).Count(&owners).Error; err != nil {
		return err
	}

	var aircraft int64
	if err := db.Model(&models.Aircraft{}).Count(&aircraft).Error; err != nil {
		return err
	}

	var completed int64
	if err := db.Model(&models.ServiceRequest{}).Where("status = ?", models.RequestStatusCompleted).Count(&completed).Error; err != nil {
		return err
	}

	if err := cache.Set(CacheKeyOwners, strconv.FormatInt(owners, 10), CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeyAircraft, strconv.FormatInt(aircraft, 10), CacheExpiration); err != nil {
		return err
	}
	return cache.Set(CacheKeyCompletedRequests, strconv.FormatInt(completed, 10), CacheExpiration)
}

// GetStatistics returns the cached figures, refreshing the cache on a miss.
func GetStatistics() StatisticsData {
	data := StatisticsData{}

	owners, err := cache.Get(CacheKeyOwners)
	if err != nil {
		if err := UpdateStatisticsCache(); err != nil {
			return data
		}
		owners, _ = cache.Get(CacheKeyOwners)
	}
	data.TotalOwners, _ = strconv.Atoi(owners)

	if aircraft, err := cache.Get(CacheKeyAircraft); err == nil {
		data.AircraftManaged, _ = strconv.Atoi(aircraft)
	}
	if completed, err := cache.Get(CacheKeyCompletedRequests); err == nil {
		data.RequestsCompleted, _ = strconv.Atoi(completed)
	}

	return data
}
