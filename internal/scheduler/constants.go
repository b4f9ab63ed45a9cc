package scheduler

// LogMsgScheduled is logged once per registered schedule
const LogMsgScheduled = "Scheduled periodic job"
