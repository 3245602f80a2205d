// Package binder turns HTTP request bodies into validation records.
//
// Record checks the Content-Type, enforces a size limit and decodes a JSON
// object into map[string]any, keeping numbers as json.Number:
//
//	record, err := binder.Record(r, binder.WithMaxSize(64<<10))
//	if err != nil {
//	    http.Error(w, err.Error(), binder.StatusCode(err))
//	    return
//	}
//
// StatusCode maps the package errors to 400, 413 and 415.
package binder
