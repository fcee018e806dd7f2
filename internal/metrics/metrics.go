// Package metrics holds the prometheus collectors of the wallet daemon.
package metrics

const (
	namespace = "hdwallet"
	unknown   = "unknown"
)

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
