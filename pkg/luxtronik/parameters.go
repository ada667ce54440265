package luxtronik

import "fmt"

// ParameterVector is the writable settings block. Set queues a write that
// is flushed to the device on the next Client.Write.
type ParameterVector struct {
	*Vector
	safe    bool
	pending map[int]int32
}

func newParameterVector(safe bool) *ParameterVector {
	return &ParameterVector{
		Vector:  newVector(parameterEntries),
		safe:    safe,
		pending: make(map[int]int32),
	}
}

// Set parses a textual value for a named parameter and queues it for the
// next write. In safe mode only parameters marked writable are accepted.
func (p *ParameterVector) Set(name, value string) error {
	e, ok := p.lookup(name)
	if !ok {
		return fmt.Errorf("luxtronik: unknown parameter %q", name)
	}
	if p.safe && !e.Writable {
		return fmt.Errorf("luxtronik: parameter %q is not writable", name)
	}
	raw, err := ParseRaw(e.Kind, value)
	if err != nil {
		return err
	}
	p.pending[e.Index] = raw
	return nil
}

func (p *ParameterVector) drainPending() map[int]int32 {
	pending := p.pending
	p.pending = make(map[int]int32)
	return pending
}

// parameterEntries maps the commonly used slots of the settings vector.
// The vector itself is firmware dependent and usually longer than one
// thousand words; unmapped slots stay readable by index.
var parameterEntries = []Entry{
	{Index: 1, Name: "ID_Einst_WK_akt", Kind: KindCelsius, Writable: true},
	{Index: 2, Name: "ID_Einst_BWS_akt", Kind: KindCelsius, Writable: true},
	{Index: 3, Name: "ID_Ba_Hz_akt", Kind: KindAccessMode, Writable: true},
	{Index: 4, Name: "ID_Ba_Bw_akt", Kind: KindAccessMode, Writable: true},
	{Index: 5, Name: "ID_Ba_Al_akt", Kind: KindAccessMode},
	{Index: 11, Name: "ID_Einst_BwTDI_akt", Kind: KindBool, Writable: true},
	{Index: 47, Name: "ID_Einst_KuCft1_akt", Kind: KindKelvin, Writable: true},
	{Index: 74, Name: "ID_Einst_TAbsenk_akt", Kind: KindCelsius},
	{Index: 105, Name: "ID_Einst_BWS_Hyst_akt", Kind: KindKelvin, Writable: true},
	{Index: 108, Name: "ID_Einst_Kuhl_Zeit_Ein_akt", Kind: KindHours, Writable: true},
	{Index: 109, Name: "ID_Einst_Kuhl_Zeit_Aus_akt", Kind: KindHours, Writable: true},
	{Index: 699, Name: "ID_Einst_Heizgrenze", Kind: KindBool},
	{Index: 700, Name: "ID_Einst_Heizgrenze_Temp", Kind: KindCelsius, Writable: true},
	{Index: 860, Name: "ID_Einst_Freigabe_Zeit_ZWE", Kind: KindCount},
	{Index: 979, Name: "ID_Einst_Sollwert_KuCft1_akt", Kind: KindCelsius, Writable: true},
	{Index: 1032, Name: "ID_Einst_P155_PumpHeat_Max", Kind: KindPercent},
}
