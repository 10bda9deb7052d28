package client

import "errors"

var (
	// ErrClientNotFound возвращается, когда клиент не найден
	// или не принадлежит компании
	ErrClientNotFound = errors.New("client.repository: client not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("client.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("client.repository: failed to scan row")
)
