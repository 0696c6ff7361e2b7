// Package importer reads receipts from files the user exports or drops into
// a folder.
//
// Supported formats:
//
//   - .json: a receipt object or an array of them. Both the app's own
//     camelCase export and Donut OCR output (store_name, menu[].nm, ...)
//     are understood.
//   - .csv: one row per line item with a header row.
//   - .xlsx: the first sheet, laid out like the CSV.
//
// Registry dispatches on file extension and implements driven.ReceiptReader.
// Watcher imports files as they appear in a directory.
package importer
