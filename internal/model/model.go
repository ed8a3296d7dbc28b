// Package model holds the records persisted by the service and the
// response envelope every API endpoint returns.
package model
