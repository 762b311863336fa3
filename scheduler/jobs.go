package scheduler

// FuncJob adapts a function to the Job interface.
type FuncJob struct {
	JobName string
	Fn      func() error
}

func (j FuncJob) Name() string { return j.JobName }

func (j FuncJob) Run() error { return j.Fn() }
