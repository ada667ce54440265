package luxtronik

import "time"

// TestHeatpumpController is an in-memory device handle with canned data
// for bridge tests.
type TestHeatpumpController struct {
	Written       []TestWrite
	Updates       int
	FailNextWrite error
}

type TestWrite struct {
	Parameter         string
	Value             string
	UpdateImmediately bool
}

func (c *TestHeatpumpController) Open() error {
	return nil
}

func (c *TestHeatpumpController) Close() error {
	return nil
}

func (c *TestHeatpumpController) Update() error {
	c.Updates++
	return nil
}

func (c *TestHeatpumpController) Write(parameter, value string, updateImmediately bool) error {
	if err := c.FailNextWrite; err != nil {
		c.FailNextWrite = nil
		return err
	}
	c.Written = append(c.Written, TestWrite{
		Parameter:         parameter,
		Value:             value,
		UpdateImmediately: updateImmediately,
	})
	return nil
}

func (c *TestHeatpumpController) GetValue(id string) (Value, bool) {
	snap := c.Snapshot()
	group, sensor, err := ParseID(id)
	if err != nil {
		return Value{}, false
	}
	var table map[string]Value
	switch group {
	case GroupParameters:
		table = snap.Parameters
	case GroupCalculations:
		table = snap.Calculations
	case GroupVisibilities:
		table = snap.Visibilities
	}
	value, ok := table[sensor]
	return value, ok
}

func (c *TestHeatpumpController) Snapshot() *Snapshot {
	return &Snapshot{
		Parameters: map[string]Value{
			"ID_Einst_WK_akt":  {Kind: KindCelsius, Raw: 0},
			"ID_Einst_BWS_akt": {Kind: KindCelsius, Raw: 500},
			"ID_Ba_Hz_akt":     {Kind: KindAccessMode, Raw: AccessModeAutomatic},
			"ID_Ba_Bw_akt":     {Kind: KindAccessMode, Raw: AccessModeAutomatic},
		},
		Calculations: map[string]Value{
			"ID_WEB_Temperatur_TVL":      {Kind: KindCelsius, Raw: 321},
			"ID_WEB_Temperatur_TRL":      {Kind: KindCelsius, Raw: 287},
			"ID_WEB_Sollwert_TRL_HZ":     {Kind: KindCelsius, Raw: 290},
			"ID_WEB_Temperatur_TA":       {Kind: KindCelsius, Raw: -52},
			"ID_WEB_Mitteltemperatur":    {Kind: KindCelsius, Raw: -38},
			"ID_WEB_Temperatur_TBW":      {Kind: KindCelsius, Raw: 482},
			"ID_WEB_Temperatur_TWE":      {Kind: KindCelsius, Raw: 81},
			"ID_WEB_Temperatur_TWA":      {Kind: KindCelsius, Raw: 45},
			"ID_WEB_WP_BZ_akt":           {Kind: KindOperationMode, Raw: OperationModeHeating},
			"ID_WEB_HUPout":              {Kind: KindBool, Raw: 1},
			"ID_WEB_BUPout":              {Kind: KindBool, Raw: 0},
			"ID_WEB_ZIPout":              {Kind: KindBool, Raw: 0},
			"ID_WEB_VD1out":              {Kind: KindBool, Raw: 1},
			"ID_WEB_EVUin":               {Kind: KindBool, Raw: 0},
			"ID_WEB_Zaehler_BetrZeitWP":  {Kind: KindSeconds, Raw: 8242731},
			"ID_WEB_Zaehler_BetrZeitVD1": {Kind: KindSeconds, Raw: 7913545},
			"ID_WEB_WMZ_Heizung":         {Kind: KindEnergy, Raw: 124582},
			"ID_WEB_WMZ_Brauchwasser":    {Kind: KindEnergy, Raw: 31245},
			"ID_WEB_WMZ_Seit":            {Kind: KindEnergy, Raw: 155827},
			"ID_WEB_AdresseIP_akt":       {Kind: KindIPv4, Raw: -1062731454}, // 192.168.1.66
		},
		Visibilities: map[string]Value{
			"ID_Visi_Temp_Vorlauf":          {Kind: KindBool, Raw: 1},
			"ID_Visi_Temp_Ruecklauf":        {Kind: KindBool, Raw: 1},
			"ID_Visi_Temp_BW_Ist":           {Kind: KindBool, Raw: 1},
			"ID_Visi_OUT_HUP":               {Kind: KindBool, Raw: 1},
			"ID_Visi_OUT_BUP":               {Kind: KindBool, Raw: 1},
			"ID_Visi_OUT_Verdichter1":       {Kind: KindBool, Raw: 1},
			"ID_Visi_OUT_Zirkulationspumpe": {Kind: KindBool, Raw: 0},
			"ID_Visi_Bst_BStdWP":            {Kind: KindBool, Raw: 1},
			"ID_Visi_Waermemenge":           {Kind: KindBool, Raw: 1},
		},
		FirmwareVersion: "V2.88.1-9086",
		Taken:           time.Now(),
	}
}

func (c *TestHeatpumpController) Info() (*ControllerInfo, error) {
	return &ControllerInfo{
		Address:         "192.168.1.66",
		FirmwareVersion: "V2.88.1-9086",
		IPAddress:       "192.168.1.66",
		OperationMode:   "heating",
	}, nil
}

var _ HeatpumpController = (*TestHeatpumpController)(nil)
