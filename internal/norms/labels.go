package norms

var wallLabels = map[WallMaterial]string{
	WallBrick:           "Кирпич",
	WallAeratedConcrete: "Газобетон",
	WallConcrete:        "Бетон",
	WallWoodenFrame:     "Деревянный каркас",
	WallGluedBeamFrame:  "Клееный брус",
}

var congestionLabels = map[Congestion]string{
	CongestionNone:   "Нет",
	CongestionMedium: "Средняя",
	CongestionHigh:   "Высокая",
}

var layingLabels = map[Laying]string{
	LayingFloor:    "По полу",
	LayingChase:    "В штробе",
	LayingCeiling:  "По потолку",
	LayingOpen:     "Открытая",
	LayingExternal: "Наружная",
	LayingInherit:  "Как в системе",
}

var radiatorTypeLabels = map[RadiatorType]string{
	RadiatorPanel:     "Панельный",
	RadiatorSectional: "Секционный",
	RadiatorTubular:   "Трубчатый",
	RadiatorInFloor:   "Внутрипольный конвектор",
}

var connectionLabels = map[Connection]string{
	ConnectionBottom: "Нижнее",
	ConnectionSide:   "Боковое",
}

// Label returns the display name of a wall material. Unknown keys are
// returned verbatim.
func (k WallMaterial) Label() string {
	return label(wallLabels, k)
}

func (k Congestion) Label() string {
	return label(congestionLabels, k)
}

func (k Laying) Label() string {
	return label(layingLabels, k)
}

func (k RadiatorType) Label() string {
	return label(radiatorTypeLabels, k)
}

func (k Connection) Label() string {
	return label(connectionLabels, k)
}

func label[K ~string](m map[K]string, k K) string {
	if s, ok := m[k]; ok {
		return s
	}
	return string(k)
}
