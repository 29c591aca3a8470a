package game

// Tuning holds every simulation constant. Tests build their own; the server
// starts from DefaultTuning and applies config overrides.
type Tuning struct {
	MapWidth  float64
	MapHeight float64
	BaseDots  int

	ConnectDist    float64 // new edge forms below this
	DisconnectDist float64 // existing edge survives below this
	RepulseRadius  float64
	RepulseK       float64
	RepulseCap     float64

	MinDotVel        float64
	MaxDotVel        float64
	ImpulseRetention float64 // per-tick multiplier on click velocity

	SpawnDots     int
	SpawnMargin   float64
	SpawnMinDist  float64
	SpawnSpread   float64
	SpawnAttempts int

	ClickRadius          float64
	ClickForce           float64
	ClickRange           float64
	ClickCost            float64
	DragCostPerDistance  float64
	MaxStamina           float64
	StaminaRegenFraction float64
	MinEffectiveness     float64
}

func DefaultTuning() Tuning {
	return Tuning{
		MapWidth:  3000,
		MapHeight: 2000,
		BaseDots:  300,

		ConnectDist:    50,
		DisconnectDist: 51,
		RepulseRadius:  49,
		RepulseK:       100,
		RepulseCap:     10,

		MinDotVel:        0.4,
		MaxDotVel:        0.8,
		ImpulseRetention: 0.95,

		SpawnDots:     5,
		SpawnMargin:   200,
		SpawnMinDist:  300,
		SpawnSpread:   50,
		SpawnAttempts: 50,

		ClickRadius:          180,
		ClickForce:           12,
		ClickRange:           200,
		ClickCost:            10,
		DragCostPerDistance:  0.05,
		MaxStamina:           100,
		StaminaRegenFraction: 0.1,
		MinEffectiveness:     0.4,
	}
}

// CellSize is the spatial grid bucket side: the largest interaction radius.
func (t Tuning) CellSize() float64 {
	return max(t.DisconnectDist, t.RepulseRadius)
}
