package consts

const (
	DraftCleanupLock = "microblog:lock:cleanup:drafts"
	TrashCleanupLock = "microblog:lock:cleanup:trash"
)
