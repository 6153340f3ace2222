package domain

import (
	"fmt"
	"regexp"
	"strings"
)

type VehicleClass string

const (
	VehicleMotorcycle  VehicleClass = "motorcycle"
	VehicleCar         VehicleClass = "car"
	VehicleSUV         VehicleClass = "suv"
	VehicleHandicapped VehicleClass = "handicapped"
)

func (v VehicleClass) Valid() bool {
	switch v {
	case VehicleMotorcycle, VehicleCar, VehicleSUV, VehicleHandicapped:
		return true
	}
	return false
}

// ParseVehicleClass chấp nhận cả tên hiển thị cũ ("SUV/Truck",
// "Handicapped Vehicle") lẫn giá trị nội bộ.
func ParseVehicleClass(s string) (VehicleClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "motorcycle":
		return VehicleMotorcycle, nil
	case "car":
		return VehicleCar, nil
	case "suv", "suv/truck", "truck":
		return VehicleSUV, nil
	case "handicapped", "handicapped vehicle":
		return VehicleHandicapped, nil
	}
	return "", fmt.Errorf("loại phương tiện không hợp lệ: %q", s)
}

var plateWhitespace = regexp.MustCompile(`\s+`)

// NormalizePlate chuẩn hóa biển số: bỏ toàn bộ khoảng trắng và viết hoa.
// Mọi tra cứu theo biển số (session, VIP, thẻ OKU, phạt) đều dùng dạng này.
func NormalizePlate(plate string) string {
	return strings.ToUpper(plateWhitespace.ReplaceAllString(plate, ""))
}
