package kommo

type SyncLeadInput struct {
	Name            string
	Email           string
	Phone           string
	PropertyAddress string
	MeetingTime     string
	Source          string
}
