package abuse_window_redis_repo

const (
	KeyDrawWindow   = "abuse:%d:draws"
	KeyCreditWindow = "abuse:%d:credits"
)
