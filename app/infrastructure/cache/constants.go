package cache

const (
	CacheVersion             = "v1"
	AnalysisResultKeyPattern = CacheVersion + ":analysis:result:%s"
)
