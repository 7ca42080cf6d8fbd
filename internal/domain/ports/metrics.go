package ports

// UserMetrics recebe eventos de negócio para observabilidade
type UserMetrics interface {
	RecordUserCreated(origin string)
	RecordBulkItem(result string)
}

// NopMetrics descarta os eventos
type NopMetrics struct{}

func (NopMetrics) RecordUserCreated(string) {}
func (NopMetrics) RecordBulkItem(string)    {}
