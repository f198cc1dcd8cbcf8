package helper

import (
	"travel_manager/database"
	"travel_manager/model"
)

// CheckByPhoneNumberCustomer kiểm tra số điện thoại đã tồn tại, bỏ qua bản ghi id
func CheckByPhoneNumberCustomer(phone string, id *uint) (bool, error) {
	var count int64
	query := database.DB.Model(&model.Customer{}).Where("phone = ?", phone)
	if id != nil {
		query = query.Where("id != ?", *id)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func CheckByEmailCustomer(email string, id *uint) (bool, error) {
	if email == "" {
		return false, nil
	}
	var count int64
	query := database.DB.Model(&model.Customer{}).Where("LOWER(email) = LOWER(?)", email)
	if id != nil {
		query = query.Where("id != ?", *id)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
