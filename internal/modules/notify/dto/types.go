package dto

type SendInput struct {
	Title string
	Body  string
}

type DeliveryOutput struct {
	Target    string
	Delivered bool
	Error     string
}

type SendOutput struct {
	Deliveries []DeliveryOutput
}

type PluginInfo struct {
	Name    string
	Version string
	Binary  string
	Enabled bool
}

type DoctorResult struct {
	Name            string
	BinaryReachable bool
	ChecksumValid   bool
	LifecycleOK     bool
	Error           string
}
