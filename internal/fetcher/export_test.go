package fetcher

// wait blocks until every issued request has completed.
func (f *Fetcher) wait() {
	f.inflight.Wait()
}
