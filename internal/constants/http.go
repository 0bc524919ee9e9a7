package constants

// Маршруты, которые отдают файлы и события
const (
	UploadsRoute = "/uploads"
	APIPrefix    = "/api/v1"
)

const HeaderTraceID = "X-Trace-ID"
