package clearance

// CompletionStatus はチェックリストから導出される完了状態です。保存はされず、
// 評価のたびにチェックリスト本体から再計算されます。
type CompletionStatus struct {
	AllDepartmentsCleared bool
	AllEquipmentReturned  bool
	CardReturned          bool
	FullyCleared          bool
	PendingDepartments    []string
	PendingEquipment      []string
}

// EvaluateCompletion はチェックリストの完了状態を導出する純粋関数です。
// 項目が空の場合は空集合に対する全称として真になります。却下された部門項目は
// 承認済みではないため未完了として扱います。
func EvaluateCompletion(checklist *Checklist) CompletionStatus {
	status := CompletionStatus{
		AllDepartmentsCleared: true,
		AllEquipmentReturned:  true,
		PendingDepartments:    []string{},
		PendingEquipment:      []string{},
	}
	if checklist == nil {
		status.FullyCleared = false
		return status
	}

	for _, item := range checklist.Items {
		if item.Status != ItemStatusApproved {
			status.AllDepartmentsCleared = false
			status.PendingDepartments = append(status.PendingDepartments, item.Department)
		}
	}

	for _, item := range checklist.Equipment {
		if !item.Returned {
			status.AllEquipmentReturned = false
			status.PendingEquipment = append(status.PendingEquipment, item.Name)
		}
	}

	status.CardReturned = checklist.CardReturned
	status.FullyCleared = status.AllDepartmentsCleared && status.AllEquipmentReturned && status.CardReturned
	return status
}
