package wld

// WldModifier provides functionality for modifying WLD data during parsing.
// This is primarily used for experimental modifications and debugging.
//
// Note: In the original C# implementation, this class contained commented-out
// code for modifying vertex colors in mesh fragments. The Go implementation
// preserves this as a placeholder for future functionality.
type WldModifier struct {
	// No fields currently - placeholder for future modification capabilities
}

// NewWldModifier creates a new WldModifier instance.
func NewWldModifier() *WldModifier {
	return &WldModifier{}
}

// ModifyFragment is a placeholder for fragment modification logic.
// In the original implementation, this could modify vertex color data
// in mesh fragments during parsing.
//
// Parameters:
//   - fragmentType: The type ID of the fragment being processed
//   - fragmentData: The raw byte data of the fragment
//   - wldType: The type of WLD file being processed
//
// Returns the potentially modified fragment data.
func (m *WldModifier) ModifyFragment(fragmentType int, fragmentData []byte, wldType WldType) []byte {
	// The original C# code had commented-out logic for modifying vertex colors
	// in zone mesh fragments. This is preserved as a placeholder.
	//
	// Example of what could be implemented:
	// if wldType == WldTypeZone && fragmentType == 0x36 { // Mesh fragment
	//     // Modify vertex colors here
	// }

	return fragmentData
}
