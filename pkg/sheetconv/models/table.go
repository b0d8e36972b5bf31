package models

// Table is the result of importing one document.
type Table struct {
	// Source names the document the rows came from.
	Source string `json:"source"`
	// Sheet is the worksheet the rows were read from.
	Sheet string `json:"sheet,omitempty"`
	// Rows holds one record per populated row below the header.
	Rows []Record `json:"rows"`
}
