package models

// Station adalah data referensi stasiun; hanya diisi oleh cmd/station-import.
type Station struct {
	UICCode      int64   `gorm:"column:uiccode;primaryKey;autoIncrement:false" json:"uiccode"`
	StnCode      string  `gorm:"column:stncode;type:varchar(16)" json:"stncode"`
	Lat          float64 `gorm:"column:lat" json:"lat"`
	Lon          float64 `gorm:"column:lon" json:"lon"`
	BikeCapacity int     `gorm:"column:bike_capacity;not null;default:0" json:"bike_capacity"`
	StnName      string  `gorm:"column:stnname;type:varchar(255)" json:"stnname"`

	// reservations.uiccode -> stations.uiccode
	Reservations []Reservation `gorm:"foreignKey:UICCode;references:UICCode;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}
