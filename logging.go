package frameasync

func (e *Executor) logSpawn(id TaskID) {
	e.logger.Debug().
		Uint64(`task`, uint64(id)).
		Uint64(`frame`, e.frame).
		Log(`task spawned`)
}

func (e *Executor) logComplete(id TaskID) {
	e.logger.Debug().
		Uint64(`task`, uint64(id)).
		Uint64(`frame`, e.frame).
		Dur(`now`, e.now).
		Log(`task completed`)
}

func (e *Executor) logRenamed(old, id TaskID) {
	e.logger.Debug().
		Uint64(`old`, uint64(old)).
		Uint64(`task`, uint64(id)).
		Log(`task id regenerated`)
}

func (e *Executor) logTimer(t timer) {
	e.logger.Debug().
		Uint64(`task`, uint64(t.waker.id)).
		Dur(`when`, t.when).
		Dur(`now`, e.now).
		Log(`timer fired`)
}

func (e *Executor) logPanic(p panicitem) {
	e.logger.Err().
		Uint64(`task`, uint64(p.task)).
		Uint64(`frame`, e.frame).
		Any(`panic`, p.value).
		Log(`task panicked`)
}
