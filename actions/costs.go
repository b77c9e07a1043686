package actions

const (
	// InitRegistryComputeUnits covers the registry and vault writes.
	InitRegistryComputeUnits uint64 = 50

	// UpdateRegistryComputeUnits covers a single registry rewrite.
	UpdateRegistryComputeUnits uint64 = 25

	// CreateMarketComputeUnits covers the market, history, and registry writes.
	CreateMarketComputeUnits uint64 = 100

	// UpdateMarketComputeUnits covers a single market rewrite.
	UpdateMarketComputeUnits uint64 = 25

	// OpenEntryComputeUnits covers the entry write.
	OpenEntryComputeUnits uint64 = 25

	// DepositComputeUnits covers pricing plus market, entry, history, balance,
	// and vault writes.
	DepositComputeUnits uint64 = 100

	// ResolveComputeUnits covers the market write and the platform fee sweep.
	ResolveComputeUnits uint64 = 75

	// ClaimComputeUnits covers the payout computation and transfer.
	ClaimComputeUnits uint64 = 75

	// ClaimCreatorFeeComputeUnits covers the fee computation and transfer.
	ClaimCreatorFeeComputeUnits uint64 = 50
)
