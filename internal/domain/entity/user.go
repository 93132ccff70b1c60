package entity

// User ro'yxatdan o'tgan foydalanuvchi profili
type User struct {
	ID        uint    `gorm:"primaryKey"`
	TgID      int64   `gorm:"uniqueIndex"`
	Language  *string `gorm:"type:text"`
	FirstName *string `gorm:"type:text"`
	LastName  *string `gorm:"type:text"`
	Phone     *string `gorm:"type:text"`
}

// IsRegistered barcha ro'yxat maydonlari to'ldirilganligini tekshirish
func (u *User) IsRegistered() bool {
	if u == nil {
		return false
	}
	return u.Language != nil && u.FirstName != nil && u.LastName != nil && u.Phone != nil
}

// UserPatch qisman yangilash uchun maydonlar.
// nil maydon saqlangan qiymatni o'zgartirmaydi.
type UserPatch struct {
	Language  *string
	FirstName *string
	LastName  *string
	Phone     *string
}

// Str string dan *string yaratish (patch qurishda qulaylik uchun)
func Str(s string) *string {
	return &s
}
