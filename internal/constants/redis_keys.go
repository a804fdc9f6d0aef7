package constants

const (
	RedisKeyQueueReady      = "notify:queue:%s:ready"
	RedisKeyQueueProcessing = "notify:queue:%s:processing"
	RedisKeyQueueDelayed    = "notify:queue:%s:delayed"
	RedisKeyQueueFailed     = "notify:queue:%s:failed"
)
