package api

const (
	// PoolTypeReplicated pools keep Size full copies of every object
	PoolTypeReplicated = "replicated"
	// PoolTypeErasure pools split objects according to an erasure code profile
	PoolTypeErasure = "erasure"

	DefaultCrushRule          = "replicated_rule"
	DefaultErasureCodeProfile = "default"
	DefaultPgPlacementNum     = 32
	DefaultReplicaSize        = 3
)

// Pool is the authoritative record of a storage pool as reported by the pool server
type Pool struct {
	// PoolName 存储池名称, unique
	PoolName string `json:"pool_name"`

	// Type replicated or erasure
	Type string `json:"type,omitempty"`

	// ApplicationMetadata applications enabled on the pool, e.g. rbd, cephfs, rgw
	ApplicationMetadata []string `json:"application_metadata,omitempty"`

	// PgPlacementNum placement group count
	PgPlacementNum int32 `json:"pg_placement_num,omitempty"`

	// Size replica size
	Size int32 `json:"size,omitempty"`

	// LastChange epoch of the last modification
	LastChange int64 `json:"last_change,omitempty"`

	// ErasureCodeProfile only meaningful for erasure pools
	ErasureCodeProfile string `json:"erasure_code_profile,omitempty"`

	// CrushRule placement rule reference
	CrushRule string `json:"crush_rule,omitempty"`
}

// StoragePoolList
type StoragePoolList struct {
	// storagePools
	StoragePools []*Pool `json:"storagePools"`
	// page 信息
	Page *Pagination `json:"page,omitempty"`
}

// PoolCreateReqBody
type PoolCreateReqBody struct {
	PoolName            string   `json:"pool_name"`
	Type                string   `json:"type,omitempty"`
	ApplicationMetadata []string `json:"application_metadata,omitempty"`
	PgPlacementNum      int32    `json:"pg_placement_num,omitempty"`
	Size                int32    `json:"size,omitempty"`
	ErasureCodeProfile  string   `json:"erasure_code_profile,omitempty"`
	CrushRule           string   `json:"crush_rule,omitempty"`
}

// PoolUpdateReqBody only non-empty fields are applied
type PoolUpdateReqBody struct {
	ApplicationMetadata []string `json:"application_metadata,omitempty"`
	PgPlacementNum      int32    `json:"pg_placement_num,omitempty"`
	Size                int32    `json:"size,omitempty"`
}

// ToPool builds the pool record with defaults filled in
func (req *PoolCreateReqBody) ToPool() *Pool {
	pool := &Pool{
		PoolName:            req.PoolName,
		Type:                req.Type,
		ApplicationMetadata: req.ApplicationMetadata,
		PgPlacementNum:      req.PgPlacementNum,
		Size:                req.Size,
		ErasureCodeProfile:  req.ErasureCodeProfile,
		CrushRule:           req.CrushRule,
	}
	if pool.Type == "" {
		pool.Type = PoolTypeReplicated
	}
	if pool.PgPlacementNum <= 0 {
		pool.PgPlacementNum = DefaultPgPlacementNum
	}
	if pool.CrushRule == "" {
		pool.CrushRule = DefaultCrushRule
	}
	switch pool.Type {
	case PoolTypeErasure:
		if pool.ErasureCodeProfile == "" {
			pool.ErasureCodeProfile = DefaultErasureCodeProfile
		}
	default:
		if pool.Size <= 0 {
			pool.Size = DefaultReplicaSize
		}
	}
	return pool
}
