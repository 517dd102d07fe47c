package palette

var defaultEntries = []Entry{
	{Name: "Stone", Hex: "#7a7a7a", BlockID: "minecraft:stone"},
	{Name: "Andesite", Hex: "#838383", BlockID: "minecraft:andesite"},
	{Name: "Dripstone", Hex: "#846c61", BlockID: "minecraft:dripstone_block"},
	{Name: "Tuff", Hex: "#6d6d66", BlockID: "minecraft:tuff"},
	{Name: "Deepslate", Hex: "#353535", BlockID: "minecraft:deepslate"},
	{Name: "Smooth Stone", Hex: "#a4a4a4", BlockID: "minecraft:smooth_stone"},
	{Name: "Dark Oak Planks", Hex: "#422a12", BlockID: "minecraft:dark_oak_planks"},
	{Name: "Dark Oak Log", Hex: "#352918", BlockID: "minecraft:dark_oak_log"},
	{Name: "Spruce Planks", Hex: "#684e2e", BlockID: "minecraft:spruce_planks"},
	{Name: "Spruce Log", Hex: "#48361e", BlockID: "minecraft:spruce_log"},
	{Name: "Jungle Planks", Hex: "#af7a58", BlockID: "minecraft:jungle_planks"},
	{Name: "Oak Planks", Hex: "#a88a53", BlockID: "minecraft:oak_planks"},
	{Name: "Mud Bricks", Hex: "#896750", BlockID: "minecraft:mud_bricks"},
	{Name: "White Concrete", Hex: "#cfd5d6", BlockID: "minecraft:white_concrete"},
	{Name: "Light Gray Concrete", Hex: "#7d7d73", BlockID: "minecraft:light_gray_concrete"},
	{Name: "Gray Concrete", Hex: "#373a3e", BlockID: "minecraft:gray_concrete"},
	{Name: "Black Concrete", Hex: "#080a0f", BlockID: "minecraft:black_concrete"},
	{Name: "Brown Concrete", Hex: "#603c20", BlockID: "minecraft:brown_concrete"},
	{Name: "Terracotta", Hex: "#945b43", BlockID: "minecraft:terracotta"},
	{Name: "White Terracotta", Hex: "#d1b2a1", BlockID: "minecraft:white_terracotta"},
	{Name: "Orange Terracotta", Hex: "#a15325", BlockID: "minecraft:orange_terracotta"},
	{Name: "Brown Terracotta", Hex: "#4d3324", BlockID: "minecraft:brown_terracotta"},
	{Name: "Gray Terracotta", Hex: "#392d24", BlockID: "minecraft:gray_terracotta"},
	{Name: "Moss Block", Hex: "#597220", BlockID: "minecraft:moss_block"},
	{Name: "Green Concrete", Hex: "#495b24", BlockID: "minecraft:green_concrete"},
	{Name: "Green Wool", Hex: "#4d6a27", BlockID: "minecraft:green_wool"},
	{Name: "Azalea Leaves", Hex: "#546d31", BlockID: "minecraft:azalea_leaves"},
	{Name: "Glass", Hex: "#ffffff", BlockID: "minecraft:glass", Transparent: true},
	{Name: "Cyan Stained Glass", Hex: "#4c7f99", BlockID: "minecraft:cyan_stained_glass", Transparent: true},
	{Name: "Black Stained Glass", Hex: "#191919", BlockID: "minecraft:black_stained_glass", Transparent: true},
}

var defaultPalette = MustNew(defaultEntries)

// Default returns the built-in block palette: stones, woods, concretes,
// terracottas, greenery and three glass types.
func Default() *Palette {
	return defaultPalette
}
