package luxtronik

// VisibilityVector is the block of display flags. The controller uses it
// to hide panels the installed hardware does not support; the bridge uses
// it to gate entity discovery the same way.
type VisibilityVector struct {
	*Vector
}

func newVisibilityVector() *VisibilityVector {
	return &VisibilityVector{Vector: newVector(visibilityEntries)}
}

var visibilityEntries = []Entry{
	{Index: 0, Name: "ID_Visi_NieAnzeigen", Kind: KindBool},
	{Index: 1, Name: "ID_Visi_ImmerAnzeigen", Kind: KindBool},
	{Index: 3, Name: "ID_Visi_Temp_Vorlauf", Kind: KindBool},
	{Index: 4, Name: "ID_Visi_Temp_Ruecklauf", Kind: KindBool},
	{Index: 5, Name: "ID_Visi_Temp_Rl_Soll", Kind: KindBool},
	{Index: 6, Name: "ID_Visi_Temp_Ruecklauf_ext", Kind: KindBool},
	{Index: 7, Name: "ID_Visi_Temp_Heissgas", Kind: KindBool},
	{Index: 8, Name: "ID_Visi_Temp_Aussent", Kind: KindBool},
	{Index: 9, Name: "ID_Visi_Temp_BW_Ist", Kind: KindBool},
	{Index: 10, Name: "ID_Visi_Temp_BW_Soll", Kind: KindBool},
	{Index: 11, Name: "ID_Visi_Temp_WQ_Ein", Kind: KindBool},
	{Index: 12, Name: "ID_Visi_Temp_Kaltekreis", Kind: KindBool},
	{Index: 23, Name: "ID_Visi_OUT_BUP", Kind: KindBool},
	{Index: 24, Name: "ID_Visi_OUT_HUP", Kind: KindBool},
	{Index: 29, Name: "ID_Visi_OUT_Verdichter1", Kind: KindBool},
	{Index: 30, Name: "ID_Visi_OUT_Verdichter2", Kind: KindBool},
	{Index: 31, Name: "ID_Visi_OUT_Zirkulationspumpe", Kind: KindBool},
	{Index: 38, Name: "ID_Visi_Bst_BStdVD1", Kind: KindBool},
	{Index: 43, Name: "ID_Visi_Bst_BStdWP", Kind: KindBool},
	{Index: 152, Name: "ID_Visi_Waermemenge", Kind: KindBool},
}
