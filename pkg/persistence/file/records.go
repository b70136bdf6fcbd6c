package file

const recordsFile = "records.json"

// Records loads the persisted business record collections, empty when the
// file does not exist yet.
func (p *Persistence) Records() (map[string][]map[string]any, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	records := map[string][]map[string]any{}
	if err := p.readFile(recordsFile, &records); err != nil {
		return nil, err
	}

	return records, nil
}

// SaveRecords writes a snapshot of the business record collections.
func (p *Persistence) SaveRecords(records map[string][]map[string]any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.writeFile(recordsFile, records)
}
