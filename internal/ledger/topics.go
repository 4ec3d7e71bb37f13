package ledger

const TopicSaleRecorded = "sale.recorded"

// Partition key = sale_id so events for one sale stay ordered.
func PartitionKey(saleID string) []byte { return []byte(saleID) }
