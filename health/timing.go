package health

import (
	"time"

	"github.com/ONSdigital/go-ns/log"
)

// TrackTime logs the time taken by the method. Usage - as the first line in a method: defer health.TrackTime(time.Now(), "methodName")
func TrackTime(start time.Time, name string) {
	elapsed := time.Since(start)
	log.Debug("timing", log.Data{"method": name, "elapsed_ms": int64(elapsed.Round(time.Millisecond) / time.Millisecond)})
}
