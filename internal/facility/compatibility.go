package facility

import "github.com/sfwannn/AssingentOOAD/internal/domain"

// CanPark là ma trận tương thích loại xe / loại chỗ. Hàm thuần, không
// phụ thuộc trạng thái chiếm chỗ:
//   - Xe máy: chỉ chỗ compact.
//   - Ô tô: compact hoặc regular.
//   - SUV/xe tải: chỉ regular.
//   - Xe người khuyết tật: compact, regular hoặc handicapped.
//   - Chỗ reserved: chỉ xe có quyền ưu tiên (elevated = true); xe máy bị
//     từ chối chỗ reserved trong mọi trường hợp.
func CanPark(vehicle domain.VehicleClass, spot domain.SpotClass, elevated bool) bool {
	if spot == domain.SpotReserved {
		return elevated && vehicle != domain.VehicleMotorcycle
	}
	switch vehicle {
	case domain.VehicleMotorcycle:
		return spot == domain.SpotCompact
	case domain.VehicleCar:
		return spot == domain.SpotCompact || spot == domain.SpotRegular
	case domain.VehicleSUV:
		return spot == domain.SpotRegular
	case domain.VehicleHandicapped:
		return spot == domain.SpotCompact || spot == domain.SpotRegular || spot == domain.SpotHandicapped
	default:
		return false
	}
}
