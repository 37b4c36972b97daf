package settings

type SystemSetting struct {
	Key   string `gorm:"column:setting_key;primaryKey"`
	Value string `gorm:"column:setting_value;not null"`
}

func (SystemSetting) TableName() string {
	return "system_settings"
}
